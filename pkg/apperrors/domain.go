package apperrors

import (
	"net/http"
)

// ErrInvalidStatus - переход статуса не разрешен (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Auth ---

var ErrTokenRequired = New(CodeUnauthorized, "auth", "Access token required", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrUserInactive = New(CodeAccountDisabled, "auth", "Account is deactivated. Please contact support.", http.StatusUnauthorized)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Access denied. Insufficient permissions.", http.StatusForbidden)

// --- Users ---

var ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "User with this email already exists", http.StatusConflict)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrIncorrectPassword = New(CodeBadRequest, "user", "Current password is incorrect", http.StatusBadRequest)

// ErrCannotModifySelf - админ пытается изменить собственный статус
var ErrCannotModifySelf = New(CodeForbidden, "user", "Operation on self is not allowed", http.StatusForbidden)

var ErrInvalidUserRole = New(CodeInvalidOperation, "user", "Invalid user role for this operation", http.StatusBadRequest)

// --- Jobs ---

var ErrJobNotFound = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)

var ErrJobNotAvailable = New(CodeForbidden, "job", "Job is not available", http.StatusForbidden)

var ErrNotJobOwner = New(CodeForbidden, "job", "You can only manage your own jobs", http.StatusForbidden)

var ErrInvalidJobStatus = New(CodeBadRequest, "job", "Invalid status value", http.StatusBadRequest)

var ErrJobExpired = New(CodeInvalidStatus, "job", "Expired jobs cannot be modified", http.StatusConflict)

var ErrJobLimitReached = New(CodeLimitExceeded, "subscription", "Job posting limit reached for your plan", http.StatusForbidden)

// --- Subscriptions ---

var ErrSubscriptionNotFound = New(CodeNotFound, "subscription", "Subscription not found", http.StatusNotFound)

var ErrNoActiveSubscription = New(CodeLimitExceeded, "subscription", "An active subscription is required", http.StatusForbidden)

var ErrInvalidPlan = New(CodeBadRequest, "subscription", "Invalid plan", http.StatusBadRequest)

// --- Applications ---

var ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)

var ErrAlreadyApplied = New(CodeConflict, "application", "You have already applied for this job", http.StatusConflict)

var ErrJobClosed = New(CodeBadRequest, "application", "Job is not accepting applications", http.StatusBadRequest)

var ErrApplicationLimitReached = New(CodeLimitExceeded, "application", "This job has reached its application limit", http.StatusForbidden)
