package handler

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/Kosench/short-url/internal/errors"
	"github.com/Kosench/short-url/internal/model"
	"github.com/Kosench/short-url/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type URLService interface {
	CreateShortURL(ctx context.Context, originalURL string) (*model.URL, error)
	GetByKey(ctx context.Context, key string) (*model.URL, error)
	IncrementClick(ctx context.Context, url *model.URL) error
	ToResponse(url *model.URL) *model.URLResponse
}

type URLHandler struct {
	urlService URLService
	log        *zap.Logger
}

func NewURLHandler(urlService URLService, log *zap.Logger) *URLHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &URLHandler{
		urlService: urlService,
		log:        log,
	}
}

// CreateURL - POST /shorten
func (h *URLHandler) CreateURL(c *gin.Context) {
	var req model.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, apperrors.NewValidationError(utils.URLField, "invalid JSON body"))
		return
	}

	originalURL := utils.SanitizeInput(req.OriginalURL)
	if err := utils.ValidateURL(originalURL); err != nil {
		h.handleError(c, err)
		return
	}

	url, err := h.urlService.CreateShortURL(c.Request.Context(), originalURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.urlService.ToResponse(url))
}

// GetStats - GET /:key/stats. Счетчик не меняется.
func (h *URLHandler) GetStats(c *gin.Context) {
	url, err := h.urlService.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.urlService.ToResponse(url))
}

// RedirectURL - GET /:key
func (h *URLHandler) RedirectURL(c *gin.Context) {
	ctx := c.Request.Context()

	url, err := h.urlService.GetByKey(ctx, c.Param("key"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.urlService.IncrementClick(ctx, url); err != nil {
		h.handleError(c, err)
		return
	}

	// Только 302: 301 кэшируется браузером и повторные переходы не дойдут до сервера
	c.Redirect(http.StatusFound, url.OriginalURL)
}

// handleError обрабатывает ошибки и возвращает соответствующие HTTP коды
func (h *URLHandler) handleError(c *gin.Context, err error) {
	if validationErr := apperrors.GetValidationError(err); validationErr != nil {
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
		return
	}

	if errors.Is(err, apperrors.ErrURLNotFound) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "url_not_found",
			Message: "URL not found",
		})
		return
	}

	h.log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	if errors.Is(err, apperrors.ErrCollisionExhausted) {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service_unavailable",
			Message: "Could not allocate a short key, try again later",
			Code:    apperrors.CodeCollisionExceeded,
		})
		return
	}

	// Детали ошибок хранилища наружу не отдаем, только код
	resp := model.ErrorResponse{
		Error:   "internal_error",
		Message: "An unexpected error occurred",
	}
	if businessErr := apperrors.GetBusinessError(err); businessErr != nil {
		resp.Code = businessErr.Code
	}
	c.JSON(http.StatusInternalServerError, resp)
}
