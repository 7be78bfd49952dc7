package cmd

import (
	"cryptofolio/internal/calculator"
	"cryptofolio/internal/domain"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gocarina/gocsv"
)

func holdingRole(t domain.HoldingType) string {
	switch t {
	case domain.HoldingType_Spot:
		return "spot"
	case domain.HoldingType_Collateral:
		return "collateral"
	case domain.HoldingType_Debt:
		return "debt"
	default:
		return string(t)
	}
}

func platformKind(t domain.PlatformType) string {
	kind, err := t.Kind()
	if err != nil {
		return "unsupported"
	}
	return kind
}

// WriteSnapshotReport prints the per-platform holdings, failures, totals and
// allocation of one snapshot.
func WriteSnapshotReport(w io.Writer, snapshot *domain.Snapshot, topN int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "snapshot %s fetched %s\n\n", snapshot.SnapshotID, snapshot.FetchedAt.Format(time.RFC3339))

	for _, platform := range snapshot.Platforms {
		fmt.Fprintf(tw, "%s (%s)\t\t\t\t%s\n", platform.Name, platformKind(platform.Type), FormatCurrency(platform.TotalValue))
		if len(platform.Holdings) == 0 {
			fmt.Fprintf(tw, "  no holdings\t\t\t\t\n")
		}
		for _, h := range platform.Holdings {
			line := fmt.Sprintf("  %s\t%s\t%s\t%s\t%s", h.AssetName, holdingRole(h.Type), FormatAmount(h.Amount), FormatPrice(h.Price), FormatCurrency(h.Value))
			if h.LoanInfo != nil && h.Type == domain.HoldingType_Collateral {
				line += fmt.Sprintf("\tltv %s, margin call %s, liquidation %s",
					FormatPercentage(h.LoanInfo.Ltv*100),
					FormatPrice(h.LoanInfo.MarginCallPrice),
					FormatPrice(h.LoanInfo.LiquidationPrice),
				)
			}
			fmt.Fprintln(tw, line)
		}
		fmt.Fprintln(tw)
	}

	for _, failure := range snapshot.Failures {
		hint := ""
		if failure.RequiresCredentials {
			hint = " (check credentials)"
		}
		fmt.Fprintf(tw, "failed: %s%s: %s\n", failure.Name, hint, failure.Error)
	}
	if len(snapshot.Failures) > 0 {
		fmt.Fprintln(tw)
	}

	analytics := calculator.ComputeAnalytics(snapshot.Platforms)
	fmt.Fprintf(tw, "assets\t%s\n", FormatCurrency(analytics.TotalAssetsValue))
	fmt.Fprintf(tw, "debt\t%s\n", FormatCurrency(analytics.TotalDebtValue))
	fmt.Fprintf(tw, "net worth\t%s\n", FormatNetValue(analytics.NetValue))
	fmt.Fprintf(tw, "distinct assets\t%d\n", analytics.TotalAssets)
	fmt.Fprintf(tw, "platforms\t%d\n\n", analytics.TotalPlatforms)

	fmt.Fprintln(tw, "allocation by asset")
	for _, slice := range calculator.BucketAssetAllocation(analytics.AssetAllocation, topN) {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", slice.Name, FormatCurrency(slice.Value), FormatPercentage(slice.Percentage))
	}
	fmt.Fprintln(tw, "allocation by platform")
	for _, slice := range calculator.PlatformSlices(analytics.PlatformAllocation) {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", slice.Name, FormatCurrency(slice.Value), FormatPercentage(slice.Percentage))
	}

	return tw.Flush()
}

func WriteAssetsCsv(w io.Writer, platforms []domain.Platform) error {
	assets := calculator.AggregateByTicker(platforms)
	return gocsv.Marshal(&assets, w)
}

type holdingRow struct {
	Platform  string  `csv:"platform"`
	AssetName string  `csv:"asset_name"`
	Ticker    string  `csv:"ticker"`
	Type      string  `csv:"type"`
	Amount    float64 `csv:"amount"`
	Price     float64 `csv:"price"`
	Value     float64 `csv:"value"`
}

func WriteHoldingsCsv(w io.Writer, platforms []domain.Platform) error {
	rows := []holdingRow{}
	for _, h := range calculator.FlattenHoldings(platforms) {
		if err := h.Type.Validate(); err != nil {
			return fmt.Errorf("cannot export %s holding on %s: %w", h.Ticker, h.PlatformName, err)
		}
		rows = append(rows, holdingRow{
			Platform:  h.PlatformName,
			AssetName: h.AssetName,
			Ticker:    h.Ticker,
			Type:      holdingRole(h.Type),
			Amount:    h.Amount,
			Price:     h.Price,
			Value:     h.Value,
		})
	}
	return gocsv.Marshal(&rows, w)
}
