package calculator

import "cryptofolio/internal/domain"

// Exchange-side LTV thresholds for flexible loans. These are fixed values and
// have not been checked against the exchange's live risk parameters.
const (
	MarginCallLtv  = 0.85
	LiquidationLtv = 0.91
)

type LoanPosition struct {
	LoanCoin         string
	CollateralCoin   string
	TotalDebt        float64
	CollateralAmount float64
	CurrentLtv       float64
}

// ComputeLoanInfo derives the collateral prices at which the loan reaches
// the margin call and liquidation thresholds. A zero collateral amount
// yields zero prices.
func ComputeLoanInfo(p LoanPosition) domain.LoanInfo {
	info := domain.LoanInfo{
		Ltv:      p.CurrentLtv,
		LoanCoin: p.LoanCoin,
		Debt:     p.TotalDebt,
	}
	if p.CollateralAmount > 0 {
		info.MarginCallPrice = p.TotalDebt / (p.CollateralAmount * MarginCallLtv)
		info.LiquidationPrice = p.TotalDebt / (p.CollateralAmount * LiquidationLtv)
	}
	return info
}

// LoanHoldings emits the collateral line and the debt line for one loan.
// Debt is assumed to be denominated in a stable unit, so its price is 1.
func LoanHoldings(p LoanPosition, collateralPrice float64) []domain.Holding {
	info := ComputeLoanInfo(p)
	collateralInfo := info
	debtInfo := info

	return []domain.Holding{
		{
			AssetName: p.CollateralCoin,
			Ticker:    p.CollateralCoin,
			Amount:    p.CollateralAmount,
			Price:     collateralPrice,
			Value:     p.CollateralAmount * collateralPrice,
			Type:      domain.HoldingType_Collateral,
			LoanInfo:  &collateralInfo,
		},
		{
			AssetName: "Debt (" + p.LoanCoin + ")",
			Ticker:    p.LoanCoin,
			Amount:    p.TotalDebt,
			Price:     1,
			Value:     -p.TotalDebt,
			Type:      domain.HoldingType_Debt,
			LoanInfo:  &debtInfo,
		},
	}
}
