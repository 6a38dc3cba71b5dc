package services

import (
	"payhook_backend/internal/models"
	"payhook_backend/internal/validator"
	"payhook_backend/pkg/apperrors"
)

// ClassifierService decides whether an event is relevant to payment
// reconciliation and, for relevant events, extracts a normalized
// PaymentEvent.
type ClassifierService struct {
	validator *validator.Validator
}

func NewClassifierService(v *validator.Validator) *ClassifierService {
	return &ClassifierService{validator: v}
}

// Relevant reports whether the event type is one we reconcile. Everything
// else must still be acknowledged with 200, just not processed.
func (s *ClassifierService) Relevant(eventType string) bool {
	return eventType == models.EventChargeSuccess || eventType == models.EventChargeFailed
}

// Classify extracts the payment payload from a relevant event.
//
// Missing app or userId in the metadata is a client-data error and must
// short-circuit here, before any store is touched. The processor-side status
// is normalized: anything other than "success" is recorded as failed.
func (s *ClassifierService) Classify(event *models.WebhookEvent) (*models.PaymentEvent, error) {
	meta := event.Data.Metadata
	if meta.App == "" || meta.UserID == "" {
		return nil, apperrors.ErrMissingMetadata.WithDetails(map[string]string{
			"app":    meta.App,
			"userId": meta.UserID,
		})
	}

	payment := &models.PaymentEvent{
		App:         models.AppName(meta.App),
		UserID:      meta.UserID,
		Reference:   event.Data.Reference,
		AmountMinor: event.Data.Amount,
		Status:      models.NormalizeStatus(event.Data.Status),
	}

	if err := s.validator.Validate(payment); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ErrInvalidPayload.WithDetails(vErr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	return payment, nil
}
