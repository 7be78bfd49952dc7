package api

import (
	"cryptofolio/internal/logger"
	"cryptofolio/internal/service"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

type ApiHandler struct {
	Store            *bolt.DB
	PortfolioService service.PortfolioService
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to cryptofolio"})
	})

	router.GET("/platforms", m.getPlatforms)
	router.POST("/platforms", m.addPlatform)
	router.POST("/refresh", m.refresh)

	router.GET("/assets", m.getAssets)
	router.GET("/assets/:ticker", m.getAsset)

	router.GET("/analytics", m.getAnalytics)
	router.GET("/analytics/allocation", m.getAllocation)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorf("request failed with %d: %s", code, err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// logRequestMiddleware tags each request with an ID and puts a request
// scoped logger on the request context.
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.New()
	lg := logger.FromContext(ctx.Request.Context()).With(
		"requestID", requestID.String(),
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Request = ctx.Request.WithContext(logger.WithLogger(ctx.Request.Context(), lg))
	ctx.Header("X-Request-ID", requestID.String())

	start := time.Now().UTC()
	ctx.Next()

	lg.Infow("request complete",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
