package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/middleware"
	"smarthire_backend/internal/validator"
	"smarthire_backend/pkg/apperrors"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// Response - успешный ответ API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

var errBodyTooLarge = apperrors.New(apperrors.CodeBadRequest, "request", "Request body too large", http.StatusRequestEntityTooLarge)

// ============================================================================
// 2. Методы привязки и валидации
// ============================================================================

// BindAndValidate_JSON разбирает JSON-тело и валидирует его
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		h.handleBindError(c, err, "Invalid request body")
		return false
	}
	return h.validate(c, obj)
}

// BindStrict_JSON отклоняет поля, которых нет в obj. Используется для частичных правок.
func (h *BaseHandler) BindStrict_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.handleBindError(c, err, "Invalid request body")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		logger.CtxWarn(ctx, "Rejected request body", "error", err.Error(), "path", c.Request.URL.Path)
		h.handleBindError(c, err, "Invalid request body")
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) handleBindError(c *gin.Context, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apperrors.HandleError(c, errBodyTooLarge)
		return
	}
	apperrors.HandleError(c, apperrors.NewBadRequestError(message+": "+err.Error()))
}

// ============================================================================
// 3. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if apperrors.StatusOf(err) >= http.StatusInternalServerError {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, err)
		return
	}

	appErr, _ := apperrors.AsAppError(err)
	logger.CtxWarn(ctx, "Service error",
		"error", appErr.Message,
		"details", appErr.Details,
		"path", c.Request.URL.Path,
	)
	apperrors.HandleError(c, appErr)
}

// ============================================================================
// 4. Вспомогательные функции
// ============================================================================

// GetIdentity возвращает пользователя запроса или пишет 401
func (h *BaseHandler) GetIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: identity not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrTokenRequired)
		return auth.Identity{}, false
	}
	return *identity, true
}

func (h *BaseHandler) OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func (h *BaseHandler) Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}
