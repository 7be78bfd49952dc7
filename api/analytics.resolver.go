package api

import (
	"cryptofolio/internal/calculator"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getAnalytics(c *gin.Context) {
	analytics, err := m.PortfolioService.Analytics(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, analytics)
}

func (m ApiHandler) getAllocation(c *gin.Context) {
	topN := calculator.DefaultTopAssets
	if top := c.Query("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 1 {
			returnErrorJsonCode(fmt.Errorf("top must be a positive integer, got %q", top), c, http.StatusBadRequest)
			return
		}
		topN = n
	}

	chart, err := m.PortfolioService.Allocation(c.Request.Context(), topN)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, chart)
}
