package handlers

// AppHandlers groups the HTTP handlers for route registration.
type AppHandlers struct {
	WebhookHandler *WebhookHandler
	HealthHandler  *HealthHandler
}
