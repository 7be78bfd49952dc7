package calculator

import (
	"cryptofolio/internal/domain"
	"fmt"
	"sort"
	"strings"
)

// suffixes connectors may append to display names
var assetNameSuffixes = []string{"(Spot)", "(Loan Collateral)"}

type assetAccumulator struct {
	name             string
	ticker           string
	totalAmount      float64
	totalAssetsValue float64
	totalDebtValue   float64
	weightedPriceSum float64
	holdings         []domain.PlatformHolding
}

func displayName(assetName string) string {
	for _, suffix := range assetNameSuffixes {
		assetName = strings.Replace(assetName, suffix, "", 1)
	}
	return strings.TrimSpace(assetName)
}

// TotalPositiveValue sums every holding with a positive value across all
// platforms. It is the denominator of AggregatedAsset.PortfolioPercentage.
func TotalPositiveValue(platforms []domain.Platform) float64 {
	total := 0.0
	for _, p := range platforms {
		for _, h := range p.Holdings {
			if h.Value > 0 {
				total += h.Value
			}
		}
	}
	return total
}

// AggregateByTicker groups every holding of every platform by its exact
// ticker. Debt lines only feed TotalDebtValue; everything else feeds the
// amount, asset value and amount-weighted price. Output is sorted by
// NetValue, largest first.
func AggregateByTicker(platforms []domain.Platform) []domain.AggregatedAsset {
	totalPortfolioAssetsValue := TotalPositiveValue(platforms)

	order := []string{}
	accumulators := map[string]*assetAccumulator{}

	for _, platform := range platforms {
		for _, holding := range platform.Holdings {
			acc, ok := accumulators[holding.Ticker]
			if !ok {
				acc = &assetAccumulator{
					name:     displayName(holding.AssetName),
					ticker:   holding.Ticker,
					holdings: []domain.PlatformHolding{},
				}
				accumulators[holding.Ticker] = acc
				order = append(order, holding.Ticker)
			}

			acc.holdings = append(acc.holdings, domain.PlatformHolding{
				Holding:      holding.DeepCopy(),
				PlatformName: platform.Name,
			})

			switch holding.Type {
			case domain.HoldingType_Debt:
				acc.totalDebtValue += -holding.Value
			case domain.HoldingType_Spot, domain.HoldingType_Collateral:
				acc.totalAmount += holding.Amount
				acc.totalAssetsValue += holding.Value
				acc.weightedPriceSum += holding.Price * holding.Amount
			default:
				panic(fmt.Sprintf("aggregation does not handle holding type %q", holding.Type))
			}
		}
	}

	out := make([]domain.AggregatedAsset, 0, len(order))
	for _, ticker := range order {
		acc := accumulators[ticker]

		price := 0.0
		if acc.totalAmount > 0 {
			price = acc.weightedPriceSum / acc.totalAmount
		}
		portfolioPercentage := 0.0
		if totalPortfolioAssetsValue > 0 {
			portfolioPercentage = acc.totalAssetsValue / totalPortfolioAssetsValue * 100
		}

		out = append(out, domain.AggregatedAsset{
			Name:                acc.name,
			Ticker:              acc.ticker,
			TotalAmount:         acc.totalAmount,
			TotalAssetsValue:    acc.totalAssetsValue,
			TotalDebtValue:      acc.totalDebtValue,
			NetValue:            acc.totalAssetsValue - acc.totalDebtValue,
			Price:               price,
			PortfolioPercentage: portfolioPercentage,
			Holdings:            acc.holdings,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetValue > out[j].NetValue
	})

	return out
}

// FindAsset returns the aggregated asset for ticker.
func FindAsset(platforms []domain.Platform, ticker string) (*domain.AggregatedAsset, error) {
	for _, asset := range AggregateByTicker(platforms) {
		if asset.Ticker == ticker {
			a := asset
			return &a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, ticker)
}

// FlattenHoldings lists every holding tagged with its platform, in platform
// then holding order.
func FlattenHoldings(platforms []domain.Platform) []domain.PlatformHolding {
	out := []domain.PlatformHolding{}
	for _, platform := range platforms {
		for _, holding := range platform.Holdings {
			out = append(out, domain.PlatformHolding{
				Holding:      holding.DeepCopy(),
				PlatformName: platform.Name,
			})
		}
	}
	return out
}
