package domain

// AggregatedAsset is one ticker rolled up across every platform.
type AggregatedAsset struct {
	Name                string            `json:"name" csv:"name"`
	Ticker              string            `json:"ticker" csv:"ticker"`
	TotalAmount         float64           `json:"totalAmount" csv:"total_amount"`
	TotalAssetsValue    float64           `json:"totalAssetsValue" csv:"total_assets_value"`
	TotalDebtValue      float64           `json:"totalDebtValue" csv:"total_debt_value"`
	NetValue            float64           `json:"netValue" csv:"net_value"`
	Price               float64           `json:"price" csv:"price"`
	PortfolioPercentage float64           `json:"portfolioPercentage" csv:"portfolio_percentage"`
	Holdings            []PlatformHolding `json:"holdings" csv:"-"`
}

type AssetAllocation struct {
	Name       string  `json:"name"`
	Ticker     string  `json:"ticker"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

type PlatformAllocation struct {
	Name       string       `json:"name"`
	Type       PlatformType `json:"type,omitempty"`
	Value      float64      `json:"value"`
	Percentage float64      `json:"percentage"`
}

// AllocationSlice is one labelled entry of a chart series, possibly a
// synthetic "Others" bucket.
type AllocationSlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PortfolioAnalytics percentages are relative to TotalAssetsValue; debt is
// never part of the denominator.
type PortfolioAnalytics struct {
	TotalAssetsValue   float64              `json:"totalAssetsValue"`
	TotalDebtValue     float64              `json:"totalDebtValue"`
	NetValue           float64              `json:"netValue"`
	TotalAssets        int                  `json:"totalAssets"`
	TotalPlatforms     int                  `json:"totalPlatforms"`
	AssetAllocation    []AssetAllocation    `json:"assetAllocation"`
	PlatformAllocation []PlatformAllocation `json:"platformAllocation"`
}

// AllocationChart holds the two chart series: assets bucketed into top-N
// plus "Others", and platforms.
type AllocationChart struct {
	Assets    []AllocationSlice `json:"assets"`
	Platforms []AllocationSlice `json:"platforms"`
}
