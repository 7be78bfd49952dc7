package connector

import (
	"context"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"cryptofolio/pkg/multiversx"
	"fmt"
	"net/http"
	"sync"
)

const (
	nativeTicker = "EGLD"
	// tokens reported below this USD value are noise and are not shown
	minTokenValueUsd = 1.0
)

type multiversxConnectorHandler struct {
	HttpClient *http.Client
	BaseURL    string
}

func NewMultiversXConnector(httpClient *http.Client, baseURL string) Connector {
	return multiversxConnectorHandler{
		HttpClient: httpClient,
		BaseURL:    baseURL,
	}
}

func (h multiversxConnectorHandler) Type() domain.PlatformType {
	return domain.PlatformType_MultiversX
}

func (h multiversxConnectorHandler) HasCredentials(cfg domain.PlatformConfig) bool {
	return cfg.WalletAddress != ""
}

func (h multiversxConnectorHandler) Fetch(ctx context.Context, cfg domain.PlatformConfig) (*domain.Platform, error) {
	log := logger.FromContext(ctx).With("platform", cfg.Name)

	if !h.HasCredentials(cfg) {
		return nil, fmt.Errorf("%s: %w", cfg.Name, domain.ErrMissingCredentials)
	}

	client := multiversx.NewClient(h.HttpClient, h.BaseURL)
	address := cfg.WalletAddress

	var (
		wg           sync.WaitGroup
		account      *multiversx.Account
		accountErr   error
		tokens       []multiversx.Token
		tokensErr    error
		economics    *multiversx.Economics
		economicsErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		account, accountErr = client.GetAccount(ctx, address)
	}()
	go func() {
		defer wg.Done()
		tokens, tokensErr = client.GetAllTokens(ctx, address)
	}()
	go func() {
		defer wg.Done()
		economics, economicsErr = client.GetEconomics(ctx)
	}()
	wg.Wait()

	if accountErr != nil {
		return nil, toFetchError(cfg.Name, "account", accountErr)
	}
	if tokensErr != nil {
		log.Warnf("token listing stopped early, keeping %d tokens: %s", len(tokens), tokensErr.Error())
	}

	nativePrice := 0.0
	if economicsErr != nil {
		log.Warnf("could not fetch %s price, defaulting to 0: %s", nativeTicker, economicsErr.Error())
	} else {
		nativePrice = economics.Price
	}

	holdings := []domain.Holding{}
	totalValue := 0.0

	if account.Balance != "" {
		amount, err := multiversx.Denominate(account.Balance, multiversx.NativeDecimals)
		if err != nil {
			return nil, toFetchError(cfg.Name, "account", err)
		}
		value := amount.InexactFloat64() * nativePrice
		holdings = append(holdings, domain.Holding{
			AssetName: nativeTicker,
			Ticker:    nativeTicker,
			Amount:    amount.InexactFloat64(),
			Price:     nativePrice,
			Value:     value,
			Type:      domain.HoldingType_Spot,
		})
		totalValue += value
	}

	for _, token := range tokens {
		if !isReportableToken(token) {
			continue
		}
		amount, err := multiversx.Denominate(token.Balance, token.Decimals)
		if err != nil {
			log.Warnf("skipping token %s: %s", token.Identifier, err.Error())
			continue
		}
		value := *token.ValueUsd
		holdings = append(holdings, domain.Holding{
			AssetName: token.Name,
			Ticker:    token.Ticker,
			Amount:    amount.InexactFloat64(),
			Price:     *token.Price,
			Value:     value,
			Type:      domain.HoldingType_Spot,
		})
		totalValue += value
	}

	log.Infow("fetched platform", "holdings", len(holdings), "totalValue", totalValue)

	return &domain.Platform{
		Name:       cfg.Name,
		Type:       domain.PlatformType_MultiversX,
		TotalValue: totalValue,
		Holdings:   holdings,
	}, nil
}

// isReportableToken drops tokens worth less than a dollar and tokens missing
// the price, balance or decimals needed to value them.
func isReportableToken(token multiversx.Token) bool {
	if token.ValueUsd == nil || *token.ValueUsd < minTokenValueUsd {
		return false
	}
	if token.Price == nil || *token.Price == 0 {
		return false
	}
	return token.Balance != "" && token.Decimals > 0
}
