package cmd

import (
	"bytes"
	"cryptofolio/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func reportPlatforms() []domain.Platform {
	loanInfo := domain.LoanInfo{Ltv: 0.5, LoanCoin: "USDT", Debt: 500, MarginCallPrice: 1176.47, LiquidationPrice: 1098.9}
	return []domain.Platform{
		{
			Name:       "Binance",
			Type:       domain.PlatformType_Binance,
			TotalValue: 5500,
			Holdings: []domain.Holding{
				{AssetName: "BTC", Ticker: "BTC", Amount: 0.1, Price: 50000, Value: 5000, Type: domain.HoldingType_Spot},
				{AssetName: "ETH", Ticker: "ETH", Amount: 0.5, Price: 2000, Value: 1000, Type: domain.HoldingType_Collateral, LoanInfo: &loanInfo},
				{AssetName: "Debt (USDT)", Ticker: "USDT", Amount: 500, Price: 1, Value: -500, Type: domain.HoldingType_Debt, LoanInfo: &loanInfo},
			},
		},
		{Name: "Wallet", Type: domain.PlatformType_MultiversX, Holdings: []domain.Holding{}},
	}
}

func TestWriteSnapshotReport(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		snapshot := domain.NewSnapshot(reportPlatforms(), []domain.PlatformFailure{
			{Name: "Other Binance", Type: domain.PlatformType_Binance, Error: "Other Binance: account failed with status code 401", RequiresCredentials: true},
		}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		buf := &bytes.Buffer{}
		require.NoError(t, WriteSnapshotReport(buf, snapshot, 5))
		out := buf.String()

		require.Contains(t, out, "Binance (exchange)")
		require.Contains(t, out, "Wallet (chain-account)")
		require.Contains(t, out, "no holdings")
		require.Contains(t, out, "$50,000.00")
		require.Contains(t, out, "-$500.00")
		require.Contains(t, out, "failed: Other Binance (check credentials)")
		require.Contains(t, out, "+$5,500.00")
		require.Contains(t, out, "BTC (BTC)")
		require.Contains(t, out, "margin call $1,176.47")
	})
}

func TestWriteCsv(t *testing.T) {
	t.Run("assets", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, WriteAssetsCsv(buf, reportPlatforms()))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Equal(t, "name,ticker,total_amount,total_assets_value,total_debt_value,net_value,price,portfolio_percentage", lines[0])
		require.Len(t, lines, 4)
		require.True(t, strings.HasPrefix(lines[1], "BTC,BTC,"))
	})

	t.Run("holdings", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, WriteHoldingsCsv(buf, reportPlatforms()))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Equal(t, "platform,asset_name,ticker,type,amount,price,value", lines[0])
		require.Len(t, lines, 4)
		require.Equal(t, "Binance,Debt (USDT),USDT,debt,500,1,-500", lines[3])
	})

	t.Run("holdings with unknown type", func(t *testing.T) {
		platforms := []domain.Platform{{
			Name: "Binance",
			Type: domain.PlatformType_Binance,
			Holdings: []domain.Holding{
				{AssetName: "BTC", Ticker: "BTC", Amount: 1, Price: 1, Value: 1, Type: domain.HoldingType("staked")},
			},
		}}
		buf := &bytes.Buffer{}
		err := WriteHoldingsCsv(buf, platforms)
		require.ErrorContains(t, err, `unknown holding type "staked"`)
		require.Empty(t, buf.String())
	})
}

func TestWritePlatformConfigs(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WritePlatformConfigs(buf, []domain.PlatformConfig{
		{Type: domain.PlatformType_Binance, Name: "Binance", ApiKey: "abcdefgh12345678", ApiSecret: "secret"},
		{Type: domain.PlatformType_MultiversX, Name: "Wallet", WalletAddress: "erd1abc"},
	}))

	out := buf.String()
	require.Contains(t, out, "****5678")
	require.NotContains(t, out, "secret")
	require.Contains(t, out, "erd1abc")
}
