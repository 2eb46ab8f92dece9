package server

import (
	"net/http"
	"time"

	"parking-api/docs"
	"parking-api/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps holds everything the router needs.
type Deps struct {
	Backend string
	Spots   handler.SpotService
}

// NewRouter builds the HTTP engine with middleware and all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	rootHandler := handler.NewRootHandler(deps.Backend)
	spotHandler := handler.NewSpotHandler(deps.Spots)

	r.GET("/", rootHandler.Root)
	r.GET("/health", rootHandler.Health)

	r.POST("/mark-spot/", spotHandler.MarkSpot)
	r.GET("/spots/", spotHandler.ListSpots)

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info().
			Int("status", c.Writer.Status()).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}

// corsMiddleware allows every origin, method and header.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
