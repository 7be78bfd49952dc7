package multiversx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.multiversx.com"
	// TokenPageSize is the page size used when listing account tokens.
	TokenPageSize = 100
	// NativeDecimals is the denomination of the native EGLD balance.
	NativeDecimals = 18
	// DefaultMaxTokenPages bounds token paging at 10,000 tokens.
	DefaultMaxTokenPages = 100
)

var ErrTokenPageLimit = errors.New("token page limit reached")

type Client struct {
	HttpClient    *http.Client
	BaseURL       string
	MaxTokenPages int
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		HttpClient:    httpClient,
		BaseURL:       strings.TrimRight(baseURL, "/"),
		MaxTokenPages: DefaultMaxTokenPages,
	}
}

type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("multiversx %s failed with status code %d", e.Endpoint, e.StatusCode)
}

type Account struct {
	Address  string `json:"address"`
	Balance  string `json:"balance"`
	Nonce    int64  `json:"nonce"`
	Shard    int    `json:"shard"`
	Username string `json:"username"`
}

// Token is a fungible token held by an account. Price and ValueUsd are only
// present for tokens the API has market data for.
type Token struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Ticker     string   `json:"ticker"`
	Decimals   int      `json:"decimals"`
	Balance    string   `json:"balance"`
	Price      *float64 `json:"price,omitempty"`
	ValueUsd   *float64 `json:"valueUsd,omitempty"`
}

type Economics struct {
	Price float64 `json:"price"`
}

// Denominate converts a raw integer amount in minor units into units.
func Denominate(raw string, decimals int) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount.Shift(-int32(decimals)), nil
}

func (c Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		io.Copy(io.Discard, response.Body)
		return &StatusError{Endpoint: path, StatusCode: response.StatusCode}
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c Client) GetAccount(ctx context.Context, address string) (*Account, error) {
	out := Account{}
	err := c.get(ctx, "/accounts/"+url.PathEscape(address), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) GetTokensPage(ctx context.Context, address string, from, size int) ([]Token, error) {
	query := url.Values{}
	query.Set("includemeta", "true")
	query.Set("from", fmt.Sprint(from))
	query.Set("size", fmt.Sprint(size))

	out := []Token{}
	err := c.get(ctx, "/accounts/"+url.PathEscape(address)+"/tokens", query, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllTokens pages through the account tokens until a page comes back
// empty. The total count is never consulted. If a page fails, or
// MaxTokenPages pages were read without reaching the end, the tokens
// collected so far are returned together with the error.
func (c Client) GetAllTokens(ctx context.Context, address string) ([]Token, error) {
	maxPages := c.MaxTokenPages
	if maxPages <= 0 {
		maxPages = DefaultMaxTokenPages
	}

	allTokens := []Token{}
	from := 0
	for page := 0; ; page++ {
		if page == maxPages {
			return allTokens, fmt.Errorf("%w: stopped %s after %d pages", ErrTokenPageLimit, address, maxPages)
		}
		if err := ctx.Err(); err != nil {
			return allTokens, err
		}
		tokens, err := c.GetTokensPage(ctx, address, from, TokenPageSize)
		if err != nil {
			return allTokens, fmt.Errorf("failed to fetch tokens for %s from offset %d: %w", address, from, err)
		}
		if len(tokens) == 0 {
			return allTokens, nil
		}
		allTokens = append(allTokens, tokens...)
		from += TokenPageSize
	}
}

func (c Client) GetEconomics(ctx context.Context) (*Economics, error) {
	out := Economics{}
	err := c.get(ctx, "/economics", nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
