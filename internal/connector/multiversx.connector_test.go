package connector

import (
	"context"
	"cryptofolio/internal/domain"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testTokens = `[
	{"identifier":"USDC-c76f1f","name":"WrappedUSDC","ticker":"USDC","decimals":6,"balance":"250000000","price":1,"valueUsd":250},
	{"identifier":"MEX-455c57","name":"MEX","ticker":"MEX","decimals":18,"balance":"1000000000000000000","price":0.000002,"valueUsd":0.000002},
	{"identifier":"NOPRICE-1","name":"NoPrice","ticker":"NOPRICE","decimals":18,"balance":"5000000000000000000","valueUsd":12},
	{"identifier":"ZERODEC-1","name":"ZeroDec","ticker":"ZERODEC","decimals":0,"balance":"5","price":3,"valueUsd":15}
]`

func multiversxServer(t *testing.T, accountStatus, economicsStatus int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/erd1wallet":
			if accountStatus != 0 {
				w.WriteHeader(accountStatus)
				return
			}
			w.Write([]byte(`{"address":"erd1wallet","balance":"2500000000000000000"}`))
		case "/accounts/erd1wallet/tokens":
			if r.URL.Query().Get("from") == "0" {
				w.Write([]byte(testTokens))
				return
			}
			w.Write([]byte(`[]`))
		case "/economics":
			if economicsStatus != 0 {
				w.WriteHeader(economicsStatus)
				return
			}
			w.Write([]byte(`{"price":40}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestMultiversXConnector_Fetch(t *testing.T) {
	cfg := domain.PlatformConfig{
		Type:          domain.PlatformType_MultiversX,
		Name:          "MultiversX Wallet",
		WalletAddress: "erd1wallet",
	}

	t.Run("native balance and filtered tokens", func(t *testing.T) {
		server := multiversxServer(t, 0, 0)
		defer server.Close()

		platform, err := NewMultiversXConnector(nil, server.URL).Fetch(context.Background(), cfg)
		require.NoError(t, err)

		expected := &domain.Platform{
			Name:       "MultiversX Wallet",
			Type:       domain.PlatformType_MultiversX,
			TotalValue: 100 + 250,
			Holdings: []domain.Holding{
				{AssetName: "EGLD", Ticker: "EGLD", Amount: 2.5, Price: 40, Value: 100, Type: domain.HoldingType_Spot},
				{AssetName: "WrappedUSDC", Ticker: "USDC", Amount: 250, Price: 1, Value: 250, Type: domain.HoldingType_Spot},
			},
		}
		require.Equal(t, "", cmp.Diff(expected, platform, floatComparer))
	})

	t.Run("price failure keeps native holding at zero", func(t *testing.T) {
		server := multiversxServer(t, 0, http.StatusServiceUnavailable)
		defer server.Close()

		platform, err := NewMultiversXConnector(nil, server.URL).Fetch(context.Background(), cfg)
		require.NoError(t, err)
		require.Equal(t, "EGLD", platform.Holdings[0].Ticker)
		require.Equal(t, 2.5, platform.Holdings[0].Amount)
		require.Equal(t, 0.0, platform.Holdings[0].Price)
		require.Equal(t, 0.0, platform.Holdings[0].Value)
		require.Equal(t, 250.0, platform.TotalValue)
	})

	t.Run("account failure fails the platform", func(t *testing.T) {
		server := multiversxServer(t, http.StatusBadGateway, 0)
		defer server.Close()

		platform, err := NewMultiversXConnector(nil, server.URL).Fetch(context.Background(), cfg)
		require.Nil(t, platform)

		var fetchErr *domain.FetchError
		require.True(t, errors.As(err, &fetchErr))
		require.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
		require.True(t, domain.IsRetryable(err))
	})

	t.Run("missing wallet address", func(t *testing.T) {
		c := NewMultiversXConnector(nil, "http://unused")
		noWallet := cfg
		noWallet.WalletAddress = ""
		require.False(t, c.HasCredentials(noWallet))
	})
}
