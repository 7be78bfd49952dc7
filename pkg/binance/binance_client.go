package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.binance.com"
	apiKeyHeader   = "X-MBX-APIKEY"
)

// Client talks to the Binance REST API. Signed endpoints need ApiKey and
// ApiSecret; the ticker price list is public.
type Client struct {
	HttpClient *http.Client
	BaseURL    string
	ApiKey     string
	ApiSecret  string

	// Now is used for request timestamps; defaults to time.Now.
	Now func() time.Time
}

func NewClient(httpClient *http.Client, baseURL, apiKey, apiSecret string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		HttpClient: httpClient,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		ApiKey:     apiKey,
		ApiSecret:  apiSecret,
		Now:        time.Now,
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("binance %s failed with status code %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type Balance struct {
	Asset  string          `json:"asset"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
}

func (b Balance) Total() decimal.Decimal {
	return b.Free.Add(b.Locked)
}

type AccountInfo struct {
	Balances []Balance `json:"balances"`
}

type TickerPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

type FlexibleLoanOrder struct {
	LoanCoin         string          `json:"loanCoin"`
	CollateralCoin   string          `json:"collateralCoin"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	CollateralAmount decimal.Decimal `json:"collateralAmount"`
	CurrentLTV       decimal.Decimal `json:"currentLTV"`
}

type FlexibleLoanOrdersResponse struct {
	Total int                 `json:"total"`
	Rows  []FlexibleLoanOrder `json:"rows"`
}

// Param is one query parameter. Parameters are encoded in the order given,
// which is also the order that gets signed.
type Param struct {
	Key   string
	Value string
}

func CanonicalQuery(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// Sign returns the lowercase hex HMAC-SHA256 of query keyed by secret.
func Sign(query, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c Client) signedQuery(params []Param) string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	withTs := append(append([]Param{}, params...), Param{
		Key:   "timestamp",
		Value: strconv.FormatInt(now().UnixMilli(), 10),
	})
	query := CanonicalQuery(withTs)
	return query + "&signature=" + Sign(query, c.ApiSecret)
}

func (c Client) get(ctx context.Context, path string, query string, signed bool, out interface{}) error {
	endpoint := c.BaseURL + path
	if query != "" {
		endpoint += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if signed {
		req.Header.Set(apiKeyHeader, c.ApiKey)
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &StatusError{
			Endpoint:   path,
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(responseBytes)),
		}
	}

	if err := json.Unmarshal(responseBytes, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c Client) GetAccount(ctx context.Context) (*AccountInfo, error) {
	out := AccountInfo{}
	err := c.get(ctx, "/api/v3/account", c.signedQuery(nil), true, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Client) GetTickerPrices(ctx context.Context) ([]TickerPrice, error) {
	out := []TickerPrice{}
	err := c.get(ctx, "/api/v3/ticker/price", "", false, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetFlexibleLoanOrders lists ongoing flexible loans. It lives under the
// sapi v2 path space, not the spot api.
func (c Client) GetFlexibleLoanOrders(ctx context.Context) (*FlexibleLoanOrdersResponse, error) {
	out := FlexibleLoanOrdersResponse{}
	err := c.get(ctx, "/sapi/v2/loan/flexible/ongoing/orders", c.signedQuery(nil), true, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
