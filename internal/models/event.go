package models

// WebhookEvent is the processor's notification body as received on the wire.
type WebhookEvent struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string        `json:"reference"`
	Amount    int64         `json:"amount"` // minor units
	Status    string        `json:"status"`
	Metadata  EventMetadata `json:"metadata"`
}

// EventMetadata routes the event to an account: app selects the store,
// userId selects the row.
type EventMetadata struct {
	App    string `json:"app"`
	UserID string `json:"userId"`
}

// PaymentEvent is a classified, normalized event ready for reconciliation.
// Built by the classifier from a relevant WebhookEvent only.
type PaymentEvent struct {
	App         AppName       `json:"app" validate:"required"`
	UserID      string        `json:"userId" validate:"required"`
	Reference   string        `json:"reference" validate:"required"`
	AmountMinor int64         `json:"amount" validate:"gte=0"`
	Status      PaymentStatus `json:"status" validate:"required,is-payment-status"`
}
