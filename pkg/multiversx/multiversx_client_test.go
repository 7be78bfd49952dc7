package multiversx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenominate(t *testing.T) {
	t.Run("native balance", func(t *testing.T) {
		amount, err := Denominate("1500000000000000000", NativeDecimals)
		require.NoError(t, err)
		require.Equal(t, "1.5", amount.String())
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := Denominate("abc", 6)
		require.Error(t, err)
	})
}

func TestClient_GetAllTokens(t *testing.T) {
	t.Run("pages until empty", func(t *testing.T) {
		// 250 tokens: pages of 100, 100, 50, then an empty page
		total := 250
		requests := []int{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/accounts/erd1abc/tokens", r.URL.Path)
			require.Equal(t, "true", r.URL.Query().Get("includemeta"))
			require.Equal(t, "100", r.URL.Query().Get("size"))

			from, err := strconv.Atoi(r.URL.Query().Get("from"))
			require.NoError(t, err)
			requests = append(requests, from)

			page := []Token{}
			for i := from; i < total && i < from+100; i++ {
				page = append(page, Token{Identifier: fmt.Sprintf("TKN-%d", i), Ticker: "TKN", Balance: "1", Decimals: 0})
			}
			json.NewEncoder(w).Encode(page)
		}))
		defer server.Close()

		tokens, err := NewClient(nil, server.URL).GetAllTokens(context.Background(), "erd1abc")
		require.NoError(t, err)
		require.Len(t, tokens, 250)
		require.Equal(t, []int{0, 100, 200, 300}, requests)
	})

	t.Run("page failure keeps earlier pages", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("from") != "0" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			page := make([]Token, 100)
			json.NewEncoder(w).Encode(page)
		}))
		defer server.Close()

		tokens, err := NewClient(nil, server.URL).GetAllTokens(context.Background(), "erd1abc")
		require.Error(t, err)
		require.Len(t, tokens, 100)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		require.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	})

	t.Run("server ignoring the offset stops at the page limit", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			page := make([]Token, 100)
			json.NewEncoder(w).Encode(page)
		}))
		defer server.Close()

		client := NewClient(nil, server.URL)
		client.MaxTokenPages = 3
		tokens, err := client.GetAllTokens(context.Background(), "erd1abc")
		require.ErrorIs(t, err, ErrTokenPageLimit)
		require.Len(t, tokens, 300)
		require.Equal(t, 3, requests)
	})
}

func TestClient_GetAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/erd1abc":
			w.Write([]byte(`{"address":"erd1abc","balance":"2000000000000000000","nonce":3,"shard":1}`))
		case "/economics":
			w.Write([]byte(`{"price":31.2,"marketCap":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(nil, server.URL)

	account, err := client.GetAccount(context.Background(), "erd1abc")
	require.NoError(t, err)
	require.Equal(t, "2000000000000000000", account.Balance)

	economics, err := client.GetEconomics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 31.2, economics.Price)

	_, err = client.GetAccount(context.Background(), "erd1missing")
	require.Error(t, err)
}
