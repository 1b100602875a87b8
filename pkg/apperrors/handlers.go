package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    ErrorCode   `json:"code"`
	Errors  interface{} `json:"errors,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError переводит ошибку в HTTP-ответ
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("Server error",
			"path", c.Request.URL.Path,
			"code", appErr.Code,
			"error", appErr.Unwrap(),
		)
	}

	resp := ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Details,
	}
	if appErr.HTTPCode >= 500 && !h.Debug {
		// В продакшене скрываем детали
		resp.Message = "Internal server error"
		resp.Errors = nil
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

var defaultHandler = &GinErrorHandler{}

// SetDebug включает детали 5xx-ошибок в ответах (development)
func SetDebug(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}
