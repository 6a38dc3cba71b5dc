package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body for JSON endpoints.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// AsAppError attempts to convert an error into *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleError writes a JSON error response for regular API endpoints.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleWebhookError responds with a bare status code. The payment processor
// contract requires no body; it only inspects the status to decide on
// redelivery (5xx => redeliver, 4xx => drop).
func HandleWebhookError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	c.Status(appErr.HTTPCode)
}
