package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(urlHandler *URLHandler, healthHandler *HealthHandler, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(Recovery(log))
	router.Use(RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Статические пути имеют приоритет над /:key
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/info", healthHandler.Info)

	router.POST("/shorten", urlHandler.CreateURL)
	router.GET("/:key/stats", urlHandler.GetStats)
	router.GET("/:key", urlHandler.RedirectURL)

	return router
}
