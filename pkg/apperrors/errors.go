package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - ошибка, которую можно отдать клиенту: код, домен, сообщение и HTTP-статус
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду и домену, поэтому копии из WithDetails/WithError
// совпадают с исходной предопределенной ошибкой
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Domain == t.Domain && e.Message == t.Message
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, Err: err, HTTPCode: httpCode}
}

// WithDetails возвращает копию; предопределенные переменные не меняются
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithError возвращает копию с причиной
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// AsAppError ищет AppError в цепочке
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf - HTTP-статус ошибки; все, что не AppError, считается 500
func StatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// InternalError оборачивает неизвестную системную ошибку
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError - 400 с ошибками по полям
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, "request", message, http.StatusBadRequest)
}
