package connector

import (
	"context"
	"cryptofolio/internal/calculator"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"cryptofolio/pkg/binance"
	"fmt"
	"net/http"
	"sync"
)

type binanceConnectorHandler struct {
	HttpClient *http.Client
	BaseURL    string
}

func NewBinanceConnector(httpClient *http.Client, baseURL string) Connector {
	return binanceConnectorHandler{
		HttpClient: httpClient,
		BaseURL:    baseURL,
	}
}

func (h binanceConnectorHandler) Type() domain.PlatformType {
	return domain.PlatformType_Binance
}

func (h binanceConnectorHandler) HasCredentials(cfg domain.PlatformConfig) bool {
	return cfg.ApiKey != "" && cfg.ApiSecret != ""
}

// Fetch pulls spot balances, the full ticker price list and open flexible
// loans concurrently. Balances and prices are required; a failed loan call
// only drops the loan holdings.
func (h binanceConnectorHandler) Fetch(ctx context.Context, cfg domain.PlatformConfig) (*domain.Platform, error) {
	log := logger.FromContext(ctx).With("platform", cfg.Name)

	if !h.HasCredentials(cfg) {
		return nil, fmt.Errorf("%s: %w", cfg.Name, domain.ErrMissingCredentials)
	}

	client := binance.NewClient(h.HttpClient, h.BaseURL, cfg.ApiKey, cfg.ApiSecret)

	var (
		wg         sync.WaitGroup
		account    *binance.AccountInfo
		accountErr error
		prices     []binance.TickerPrice
		pricesErr  error
		loans      *binance.FlexibleLoanOrdersResponse
		loansErr   error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		account, accountErr = client.GetAccount(ctx)
	}()
	go func() {
		defer wg.Done()
		prices, pricesErr = client.GetTickerPrices(ctx)
	}()
	go func() {
		defer wg.Done()
		loans, loansErr = client.GetFlexibleLoanOrders(ctx)
	}()
	wg.Wait()

	if accountErr != nil {
		return nil, toFetchError(cfg.Name, "account", accountErr)
	}
	if pricesErr != nil {
		return nil, toFetchError(cfg.Name, "ticker prices", pricesErr)
	}

	priceTable := calculator.PriceTable{}
	for _, p := range prices {
		priceTable[p.Symbol] = p.Price.InexactFloat64()
	}

	log.Debugf("processing %d balances", len(account.Balances))

	holdings := []domain.Holding{}
	totalValue := 0.0

	for _, balance := range account.Balances {
		amount := balance.Total().InexactFloat64()
		if amount <= 0 {
			continue
		}
		price := calculator.ResolvePrice(balance.Asset, priceTable)
		value := amount * price
		if value <= 0 {
			continue
		}
		holdings = append(holdings, domain.Holding{
			AssetName: balance.Asset,
			Ticker:    balance.Asset,
			Amount:    amount,
			Price:     price,
			Value:     value,
			Type:      domain.HoldingType_Spot,
		})
		totalValue += value
	}

	if loansErr != nil {
		log.Warnf("failed to fetch flexible loans, continuing with spot holdings: %s", toFetchError(cfg.Name, "flexible loans", loansErr).Error())
	} else if loans != nil && len(loans.Rows) > 0 {
		log.Debugf("processing %d flexible loan positions", len(loans.Rows))
		for _, order := range loans.Rows {
			position := calculator.LoanPosition{
				LoanCoin:         order.LoanCoin,
				CollateralCoin:   order.CollateralCoin,
				TotalDebt:        order.TotalDebt.InexactFloat64(),
				CollateralAmount: order.CollateralAmount.InexactFloat64(),
				CurrentLtv:       order.CurrentLTV.InexactFloat64(),
			}
			collateralPrice := calculator.ResolvePrice(order.CollateralCoin, priceTable)
			loanHoldings := calculator.LoanHoldings(position, collateralPrice)
			for _, lh := range loanHoldings {
				totalValue += lh.Value
			}
			holdings = append(holdings, loanHoldings...)
		}
	}

	log.Infow("fetched platform", "holdings", len(holdings), "totalValue", totalValue)

	return &domain.Platform{
		Name:       cfg.Name,
		Type:       domain.PlatformType_Binance,
		TotalValue: totalValue,
		Holdings:   holdings,
	}, nil
}
