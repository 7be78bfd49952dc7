package api

import (
	"cryptofolio/internal/domain"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type addPlatformRequest struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	ApiKey        string `json:"apiKey"`
	ApiSecret     string `json:"apiSecret"`
	WalletAddress string `json:"walletAddress"`
}

type addPlatformResponse struct {
	Name string              `json:"name"`
	Type domain.PlatformType `json:"type"`
}

func (m ApiHandler) getPlatforms(c *gin.Context) {
	snapshot, err := m.PortfolioService.GetSnapshot(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, snapshot)
}

func (m ApiHandler) refresh(c *gin.Context) {
	snapshot, err := m.PortfolioService.Refresh(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, snapshot)
}

func (m ApiHandler) addPlatform(c *gin.Context) {
	var requestBody addPlatformRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, http.StatusBadRequest)
		return
	}

	cfg := domain.PlatformConfig{
		Type:          domain.PlatformType(requestBody.Type),
		Name:          requestBody.Name,
		ApiKey:        requestBody.ApiKey,
		ApiSecret:     requestBody.ApiSecret,
		WalletAddress: requestBody.WalletAddress,
	}
	if err := cfg.Validate(); err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	err := m.PortfolioService.AddPlatform(c.Request.Context(), cfg)
	if errors.Is(err, domain.ErrPlatformExists) {
		returnErrorJsonCode(err, c, http.StatusConflict)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(http.StatusCreated, addPlatformResponse{
		Name: cfg.Name,
		Type: cfg.Type,
	})
}
