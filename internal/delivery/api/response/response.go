// Package response renders the JSON envelopes every endpoint answers with.
package response

import (
	"net/http"

	"accounts/internal/delivery/api/validator"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Only for 4xx other than 401/403
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// MessageBody is the payload of endpoints that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success writes data inside the standard envelope.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Message answers 200 with a confirmation message.
func Message(c echo.Context, message string) error {
	return Success(c, http.StatusOK, MessageBody{Message: message})
}

// Error writes an error envelope. Details are dropped for 5xx and for 401/403 so
// that authentication failures do not leak account state.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	if statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

// BindingError answers a body or query that could not be decoded.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, domainerrors.CodeValidationFailed, message, nil)
}

// ValidationError answers a request struct that failed its validate tags.
func ValidationError(c echo.Context, err error) error {
	var details any
	if fields := validator.FieldErrors(err); len(fields) > 0 {
		details = fields
	}

	return Error(c, http.StatusBadRequest, domainerrors.CodeValidationFailed,
		domainerrors.ErrValidationFailed.Message(), details)
}

// Unauthorized answers a request that reached a handler without a signed-in account.
func Unauthorized(c echo.Context) error {
	return Error(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, domainerrors.ErrUnauthorized.Message(), nil)
}

// InvalidID answers a path parameter that is not a UUID.
func InvalidID(c echo.Context) error {
	return Error(c, http.StatusBadRequest, domainerrors.CodeValidationFailed, "invalid account id", nil)
}

// HandleAppError renders a usecase error. Anything that is not an AppError is
// returned for the central error handler to log and mask.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
