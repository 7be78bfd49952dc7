package calculator

import (
	"cryptofolio/internal/domain"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// DefaultTopAssets is how many assets the allocation chart shows before
// collapsing the rest into "Others".
const DefaultTopAssets = 5

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total, err := stats.Sum(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return total
}

func percentageOf(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return value / total * 100
}

// ComputeAnalytics builds the portfolio-wide totals and allocations.
// Totals are summed over raw holdings: positive values are assets, anything
// else contributes its magnitude to debt.
func ComputeAnalytics(platforms []domain.Platform) domain.PortfolioAnalytics {
	totalAssetsValue := 0.0
	totalDebtValue := 0.0

	platformOrder := []string{}
	platformTypes := map[string]domain.PlatformType{}
	platformValues := map[string][]float64{}

	for _, platform := range platforms {
		if _, ok := platformValues[platform.Name]; !ok {
			platformOrder = append(platformOrder, platform.Name)
			platformValues[platform.Name] = []float64{}
		}
		platformTypes[platform.Name] = platform.Type

		for _, holding := range platform.Holdings {
			if holding.Value > 0 {
				totalAssetsValue += holding.Value
				platformValues[platform.Name] = append(platformValues[platform.Name], holding.Value)
			} else {
				totalDebtValue += -holding.Value
			}
		}
	}

	aggregatedAssets := AggregateByTicker(platforms)

	assetAllocation := []domain.AssetAllocation{}
	for _, asset := range aggregatedAssets {
		if asset.TotalAssetsValue <= 0 {
			continue
		}
		assetAllocation = append(assetAllocation, domain.AssetAllocation{
			Name:       asset.Name,
			Ticker:     asset.Ticker,
			Value:      asset.TotalAssetsValue,
			Percentage: percentageOf(asset.TotalAssetsValue, totalAssetsValue),
		})
	}

	platformAllocation := []domain.PlatformAllocation{}
	for _, name := range platformOrder {
		value := sum(platformValues[name])
		if value <= 0 {
			continue
		}
		platformAllocation = append(platformAllocation, domain.PlatformAllocation{
			Name:       name,
			Type:       platformTypes[name],
			Value:      value,
			Percentage: percentageOf(value, totalAssetsValue),
		})
	}
	sort.SliceStable(platformAllocation, func(i, j int) bool {
		return platformAllocation[i].Value > platformAllocation[j].Value
	})

	return domain.PortfolioAnalytics{
		TotalAssetsValue:   totalAssetsValue,
		TotalDebtValue:     totalDebtValue,
		NetValue:           totalAssetsValue - totalDebtValue,
		TotalAssets:        len(aggregatedAssets),
		TotalPlatforms:     len(platforms),
		AssetAllocation:    assetAllocation,
		PlatformAllocation: platformAllocation,
	}
}

// BucketAssetAllocation keeps the topN positive entries by value and folds
// the remainder into a single "Others (k assets)" slice. The bucket is only
// added when its summed value is strictly positive.
func BucketAssetAllocation(allocation []domain.AssetAllocation, topN int) []domain.AllocationSlice {
	positive := []domain.AssetAllocation{}
	for _, a := range allocation {
		if a.Value > 0 {
			positive = append(positive, a)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Value > positive[j].Value
	})

	out := []domain.AllocationSlice{}
	if topN < 0 {
		topN = 0
	}
	if len(positive) <= topN {
		for _, a := range positive {
			out = append(out, assetSlice(a))
		}
		return out
	}

	for _, a := range positive[:topN] {
		out = append(out, assetSlice(a))
	}

	rest := positive[topN:]
	values := make([]float64, len(rest))
	percentages := make([]float64, len(rest))
	for i, a := range rest {
		values[i] = a.Value
		percentages[i] = a.Percentage
	}
	othersValue := sum(values)
	if othersValue > 0 {
		out = append(out, domain.AllocationSlice{
			Name:       fmt.Sprintf("Others (%d assets)", len(rest)),
			Value:      othersValue,
			Percentage: sum(percentages),
		})
	}

	return out
}

func assetSlice(a domain.AssetAllocation) domain.AllocationSlice {
	return domain.AllocationSlice{
		Name:       fmt.Sprintf("%s (%s)", a.Name, a.Ticker),
		Value:      a.Value,
		Percentage: a.Percentage,
	}
}

// PlatformSlices converts the platform allocation into a chart series.
func PlatformSlices(allocation []domain.PlatformAllocation) []domain.AllocationSlice {
	out := []domain.AllocationSlice{}
	for _, p := range allocation {
		if p.Value <= 0 {
			continue
		}
		out = append(out, domain.AllocationSlice{
			Name:       p.Name,
			Value:      p.Value,
			Percentage: p.Percentage,
		})
	}
	return out
}
