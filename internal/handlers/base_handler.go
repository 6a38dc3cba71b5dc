package handlers

import (
	"payhook_backend/internal/logger"
	"payhook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// HandleWebhookError logs a pipeline error with request context and answers
// with the bare status code the processor contract requires.
func (h *BaseHandler) HandleWebhookError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode >= 500 {
			logger.CtxWithError(ctx, "Webhook processing failed", appErr, "code", string(appErr.Code))
		} else {
			logger.CtxWarn(ctx, "Webhook rejected",
				"code", string(appErr.Code),
				"error", appErr.Message,
			)
		}
		apperrors.HandleWebhookError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleWebhookError(c, apperrors.InternalError(err))
	}
}
