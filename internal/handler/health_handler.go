package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "URL Shortener"
	serviceVersion = "1.0.0"
)

// StoreProbe - то, что health-эндпоинтам нужно знать о хранилище
type StoreProbe interface {
	Ping(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	Driver() string
}

type HealthHandler struct {
	store StoreProbe
	log   *zap.Logger
}

func NewHealthHandler(store StoreProbe, log *zap.Logger) *HealthHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &HealthHandler{
		store: store,
		log:   log,
	}
}

// Health - liveness, к хранилищу не обращается
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready - readiness, 503 пока БД недоступна
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) Info(c *gin.Context) {
	version, err := h.store.Version(c.Request.Context())
	if err != nil {
		h.log.Warn("failed to get database version", zap.Error(err))
		version = "unknown"
	}

	c.JSON(http.StatusOK, gin.H{
		"service":          serviceName,
		"version":          serviceVersion,
		"database_driver":  h.store.Driver(),
		"database_version": version,
	})
}
