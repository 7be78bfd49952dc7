package cmd

import (
	"cryptofolio/api"
	"cryptofolio/internal/connector"
	"cryptofolio/internal/repository"
	"cryptofolio/internal/service"
	"cryptofolio/internal/util"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler == nil || handler.Store == nil {
		return
	}
	if err := handler.Store.Close(); err != nil {
		zap.S().Errorf("failed to close store: %s", err.Error())
	}
}

func InitializeDependencies(config *util.Config) (*api.ApiHandler, error) {
	store, err := repository.OpenStore(config.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	configRepository := repository.NewPlatformConfigRepository(store)

	httpClient := &http.Client{Timeout: config.HttpTimeout()}
	connectors := []connector.Connector{
		connector.NewBinanceConnector(httpClient, config.BinanceBaseUrl),
		connector.NewMultiversXConnector(httpClient, config.MultiversxBaseUrl),
	}

	platformService := service.NewPlatformService(
		configRepository,
		connectors,
		service.DefaultRetryPolicy(),
	)
	portfolioService := service.NewPortfolioService(
		platformService,
		configRepository,
		service.NewSnapshotCache(config.CacheTtl()),
	)

	return &api.ApiHandler{
		Store:            store,
		PortfolioService: portfolioService,
	}, nil
}
