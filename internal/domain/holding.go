package domain

import "fmt"

// HoldingType tags the economic role a holding line plays.
type HoldingType string

const (
	HoldingType_Spot       HoldingType = "spot"
	HoldingType_Collateral HoldingType = "collateral"
	HoldingType_Debt       HoldingType = "debt"
)

func (t HoldingType) Validate() error {
	switch t {
	case HoldingType_Spot, HoldingType_Collateral, HoldingType_Debt:
		return nil
	default:
		return fmt.Errorf("unknown holding type %q", string(t))
	}
}

// LoanInfo describes the collateralized loan a holding participates in.
// The collateral line and its debt line carry equal copies.
type LoanInfo struct {
	Ltv              float64 `json:"ltv"`
	LoanCoin         string  `json:"loanCoin"`
	Debt             float64 `json:"debt"`
	MarginCallPrice  float64 `json:"marginCallPrice"`
	LiquidationPrice float64 `json:"liquidationPrice"`
}

// Holding is one position line on one platform. Amount is never negative;
// debt lines carry a negative Value instead.
type Holding struct {
	AssetName string      `json:"assetName"`
	Ticker    string      `json:"ticker"`
	Amount    float64     `json:"amount"`
	Price     float64     `json:"price"`
	Value     float64     `json:"value"`
	Type      HoldingType `json:"type"`
	Apy       *float64    `json:"apy,omitempty"`
	LoanInfo  *LoanInfo   `json:"loanInfo,omitempty"`
}

func (h Holding) DeepCopy() Holding {
	out := h
	if h.Apy != nil {
		apy := *h.Apy
		out.Apy = &apy
	}
	if h.LoanInfo != nil {
		info := *h.LoanInfo
		out.LoanInfo = &info
	}
	return out
}

// PlatformHolding is a raw holding tagged with the platform it came from.
type PlatformHolding struct {
	Holding
	PlatformName string `json:"platformName"`
}
