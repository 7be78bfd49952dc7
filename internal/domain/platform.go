package domain

import "fmt"

type PlatformType string

const (
	PlatformType_Binance    PlatformType = "binance"
	PlatformType_MultiversX PlatformType = "multiversx"
)

func (t PlatformType) Validate() error {
	switch t {
	case PlatformType_Binance, PlatformType_MultiversX:
		return nil
	default:
		return fmt.Errorf("unknown platform type %q", string(t))
	}
}

// Kind reports whether the platform is an exchange or an on-chain account.
func (t PlatformType) Kind() (string, error) {
	switch t {
	case PlatformType_Binance:
		return "exchange", nil
	case PlatformType_MultiversX:
		return "chain-account", nil
	default:
		return "", fmt.Errorf("unknown platform type %q", string(t))
	}
}

// Platform is one connected account. Name is unique across the portfolio.
type Platform struct {
	Name       string       `json:"name"`
	Type       PlatformType `json:"type"`
	TotalValue float64      `json:"totalValue"`
	Holdings   []Holding    `json:"holdings"`
}

func NewPlaceholderPlatform(cfg PlatformConfig) Platform {
	return Platform{
		Name:       cfg.Name,
		Type:       cfg.Type,
		TotalValue: 0,
		Holdings:   []Holding{},
	}
}

func (p Platform) DeepCopy() Platform {
	out := p
	out.Holdings = make([]Holding, len(p.Holdings))
	for i, h := range p.Holdings {
		out.Holdings[i] = h.DeepCopy()
	}
	return out
}

// PlatformConfig is one persisted platform entry. Which credential fields are
// used depends on Type.
type PlatformConfig struct {
	Type          PlatformType `json:"type"`
	Name          string       `json:"name"`
	ApiKey        string       `json:"apiKey,omitempty"`
	ApiSecret     string       `json:"apiSecret,omitempty"`
	WalletAddress string       `json:"walletAddress,omitempty"`
}

func (c PlatformConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("platform name is required")
	}
	return c.Type.Validate()
}
