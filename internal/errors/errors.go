// Package errors provides custom error types for the Paisa API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked due to repeated failed logins", StatusCode: http.StatusLocked}
	ErrWeakPassword       = &AppError{Code: "WEAK_PASSWORD", Message: "Password is too weak", StatusCode: http.StatusBadRequest}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound        = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail      = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrNoSecurityQuestion  = &AppError{Code: "NO_SECURITY_QUESTION", Message: "No security question is set for this account", StatusCode: http.StatusNotFound}
	ErrWrongSecurityAnswer = &AppError{Code: "WRONG_SECURITY_ANSWER", Message: "Security answer does not match", StatusCode: http.StatusBadRequest}
)

// Email verification (OTP) errors.
var (
	ErrOTPNotFound      = &AppError{Code: "OTP_NOT_FOUND", Message: "No pending verification code for this email", StatusCode: http.StatusNotFound}
	ErrOTPExpired       = &AppError{Code: "OTP_EXPIRED", Message: "Verification code has expired, request a new one", StatusCode: http.StatusBadRequest}
	ErrOTPInvalid       = &AppError{Code: "OTP_INVALID", Message: "Verification code is incorrect", StatusCode: http.StatusBadRequest}
	ErrOTPExhausted     = &AppError{Code: "OTP_EXHAUSTED", Message: "Too many wrong attempts, request a new code", StatusCode: http.StatusBadRequest}
	ErrOTPSendLimit     = &AppError{Code: "OTP_SEND_LIMIT", Message: "Too many verification codes requested, try again later", StatusCode: http.StatusTooManyRequests}
	ErrEmailNotVerified = &AppError{Code: "EMAIL_NOT_VERIFIED", Message: "Email has not been verified", StatusCode: http.StatusBadRequest}
)

// Category (master data) errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	ErrCategoryInUse     = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is referenced by existing entries", StatusCode: http.StatusConflict}
)

// Ledger entry errors.
var (
	ErrEntryNotFound = &AppError{Code: "ENTRY_NOT_FOUND", Message: "Entry not found", StatusCode: http.StatusNotFound}
	ErrInvalidMonth  = &AppError{Code: "INVALID_MONTH", Message: "Month must be in YYYY-MM format", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be positive", StatusCode: http.StatusBadRequest}
)

// Reporting errors.
var (
	ErrInvalidRange      = &AppError{Code: "INVALID_RANGE", Message: "Invalid month range", StatusCode: http.StatusBadRequest}
	ErrInvalidExportType = &AppError{Code: "INVALID_EXPORT_TYPE", Message: "Unsupported export type", StatusCode: http.StatusBadRequest}
)
