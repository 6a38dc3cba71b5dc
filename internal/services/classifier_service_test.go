package services

import (
	"testing"

	"payhook_backend/internal/models"
	"payhook_backend/internal/validator"
	"payhook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func newClassifier() *ClassifierService {
	return NewClassifierService(validator.New())
}

func TestClassifierService_Relevant(t *testing.T) {
	svc := newClassifier()

	tests := []struct {
		eventType string
		relevant  bool
	}{
		{"charge.success", true},
		{"charge.failed", true},
		{"charge.refunded", false},
		{"subscription.create", false},
		{"transfer.success", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.relevant, svc.Relevant(tt.eventType), "event type %q", tt.eventType)
	}
}

func TestClassifierService_Classify(t *testing.T) {
	svc := newClassifier()

	event := &models.WebhookEvent{
		Event: models.EventChargeSuccess,
		Data: models.EventData{
			Reference: "ref1",
			Amount:    5000,
			Status:    "success",
			Metadata:  models.EventMetadata{App: "psrtest", UserID: "u1"},
		},
	}

	payment, err := svc.Classify(event)
	assert.NoError(t, err)
	assert.Equal(t, models.AppPsrTest, payment.App)
	assert.Equal(t, "u1", payment.UserID)
	assert.Equal(t, "ref1", payment.Reference)
	assert.Equal(t, int64(5000), payment.AmountMinor)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
}

func TestClassifierService_NormalizesStatus(t *testing.T) {
	svc := newClassifier()

	for _, raw := range []string{"failed", "abandoned", "reversed", "pending-no-such"} {
		event := &models.WebhookEvent{
			Event: models.EventChargeFailed,
			Data: models.EventData{
				Reference: "ref1",
				Amount:    1000,
				Status:    raw,
				Metadata:  models.EventMetadata{App: "edutest", UserID: "u2"},
			},
		}

		payment, err := svc.Classify(event)
		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusFailed, payment.Status, "status %q must normalize to failed", raw)
	}
}

func TestClassifierService_MissingMetadata(t *testing.T) {
	svc := newClassifier()

	tests := []struct {
		name string
		meta models.EventMetadata
	}{
		{"no app", models.EventMetadata{UserID: "u1"}},
		{"no userId", models.EventMetadata{App: "psrtest"}},
		{"empty", models.EventMetadata{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &models.WebhookEvent{
				Event: models.EventChargeSuccess,
				Data: models.EventData{
					Reference: "ref1",
					Amount:    5000,
					Status:    "success",
					Metadata:  tt.meta,
				},
			}

			_, err := svc.Classify(event)
			appErr, ok := apperrors.AsAppError(err)
			assert.True(t, ok)
			assert.Equal(t, apperrors.CodeMissingMetadata, appErr.Code)
			assert.Equal(t, 400, appErr.HTTPCode)
		})
	}
}

func TestClassifierService_MissingReference(t *testing.T) {
	svc := newClassifier()

	event := &models.WebhookEvent{
		Event: models.EventChargeSuccess,
		Data: models.EventData{
			Amount:   5000,
			Status:   "success",
			Metadata: models.EventMetadata{App: "psrtest", UserID: "u1"},
		},
	}

	_, err := svc.Classify(event)
	appErr, ok := apperrors.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidPayload, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)
}
