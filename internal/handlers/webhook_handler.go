package handlers

import (
	"encoding/json"
	"net/http"

	"payhook_backend/internal/logger"
	"payhook_backend/internal/middleware"
	"payhook_backend/internal/models"
	"payhook_backend/internal/services"
	"payhook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the processor's hex HMAC-SHA512 of the raw body.
const SignatureHeader = "X-Signature"

type WebhookHandler struct {
	*BaseHandler
	webhookService services.WebhookService
}

func NewWebhookHandler(base *BaseHandler, webhookService services.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:    base,
		webhookService: webhookService,
	}
}

func (h *WebhookHandler) RegisterRoutes(r *gin.RouterGroup) {
	// External callback from the payment processor - no auth beyond the
	// signature itself, raw body captured for verification.
	r.POST("/paystack/webhooks", middleware.RawBodyMiddleware(), h.HandleWebhook)
}

// HandleWebhook receives one payment-status notification. The response is a
// bare status code; the processor redelivers on 5xx and drops the event on
// anything else, so every branch must answer exactly once.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	rawBody, ok := middleware.RawBody(c)
	if !ok {
		// RawBodyMiddleware is not wired - a startup misconfiguration, not
		// a client problem.
		logger.CtxError(ctx, "Raw body missing from context: RawBodyMiddleware not registered")
		c.Status(http.StatusInternalServerError)
		return
	}

	signature := c.GetHeader(SignatureHeader)

	var event models.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		h.HandleWebhookError(c, apperrors.ErrInvalidPayload.WithError(err))
		return
	}

	result, err := h.webhookService.Process(ctx, rawBody, signature, &event)
	if err != nil {
		h.HandleWebhookError(c, err)
		return
	}

	logger.CtxDebug(ctx, "Webhook acknowledged", "result", string(result))
	c.Status(http.StatusOK)
}
