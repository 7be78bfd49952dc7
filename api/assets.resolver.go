package api

import (
	"cryptofolio/internal/domain"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type getAssetsResponse struct {
	Assets []domain.AggregatedAsset `json:"assets"`
}

func (m ApiHandler) getAssets(c *gin.Context) {
	assets, err := m.PortfolioService.Assets(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, getAssetsResponse{Assets: assets})
}

func (m ApiHandler) getAsset(c *gin.Context) {
	asset, err := m.PortfolioService.Asset(c.Request.Context(), c.Param("ticker"))
	if errors.Is(err, domain.ErrAssetNotFound) {
		returnErrorJsonCode(err, c, http.StatusNotFound)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, asset)
}
