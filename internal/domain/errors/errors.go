package errors

import (
	"net/http"

	"accounts/internal/errors"
)

// Machine-readable error codes. The set is closed: every error returned by a usecase
// carries one of them.
const (
	CodeValidationFailed         = "VALIDATION_FAILED"
	CodeDuplicateEmail           = "DUPLICATE_EMAIL"
	CodeDuplicateUsername        = "DUPLICATE_USERNAME"
	CodeAccountNotFound          = "ACCOUNT_NOT_FOUND"
	CodeInvalidCredentials       = "INVALID_CREDENTIALS"
	CodeAccountInactive          = "ACCOUNT_INACTIVE"
	CodePasswordTooShort         = "PASSWORD_TOO_SHORT"
	CodePasswordTooLong          = "PASSWORD_TOO_LONG"
	CodePasswordMismatch         = "PASSWORD_MISMATCH"
	CodeCurrentPasswordIncorrect = "CURRENT_PASSWORD_INCORRECT"
	CodePasswordHashFailed       = "PASSWORD_HASH_FAILED"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeAlreadyAuthenticated     = "ALREADY_AUTHENTICATED"
	CodeDatabaseExecuteFailed    = "DATABASE_EXECUTE_FAILED"
	CodeInternalError            = "INTERNAL_ERROR"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError with the same error code, so copies made by WithDetails
// still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Input errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		CodeValidationFailed,
		"input validation failed",
		"",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		CodePasswordTooShort,
		"password is too short",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		http.StatusBadRequest,
		CodePasswordTooLong,
		"password must not exceed 72 bytes",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		CodePasswordMismatch,
		"password confirmation does not match",
		"",
	)

	// Uniqueness errors
	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		CodeDuplicateEmail,
		"email is already registered",
		"",
	)

	ErrDuplicateUsername = NewBaseError(
		http.StatusConflict,
		CodeDuplicateUsername,
		"username is already taken",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		CodeAccountNotFound,
		"account not found",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		CodeInvalidCredentials,
		"invalid username/email or password",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusForbidden,
		CodeAccountInactive,
		"account is deactivated",
		"",
	)

	ErrCurrentPasswordIncorrect = NewBaseError(
		http.StatusBadRequest,
		CodeCurrentPasswordIncorrect,
		"current password is incorrect",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		CodeUnauthorized,
		"please log in first",
		"",
	)

	ErrAlreadyAuthenticated = NewBaseError(
		http.StatusForbidden,
		CodeAlreadyAuthenticated,
		"already logged in",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		CodePasswordHashFailed,
		"password processing failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		CodeInternalError,
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for logging.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return CodeDatabaseExecuteFailed
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "a storage error occurred, please try again later"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// CodeOf returns the error code of the first AppError in err's chain, or
// CodeInternalError when there is none.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode()
	}

	return CodeInternalError
}

// AsStorageError keeps AppErrors as they are and turns anything else into a
// DatabaseExecuteError.
func AsStorageError(err error, details string) error {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}

	return NewDatabaseExecuteError(err, details)
}
