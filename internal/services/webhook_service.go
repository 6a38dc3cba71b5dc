package services

import (
	"context"
	"time"

	"payhook_backend/internal/alerts"
	"payhook_backend/internal/logger"
	"payhook_backend/internal/models"
	"payhook_backend/internal/repositories"
	"payhook_backend/pkg/apperrors"
)

// ProcessResult distinguishes the two acknowledged outcomes. Both answer 200;
// only the logs care which one it was.
type ProcessResult string

const (
	ResultProcessed ProcessResult = "processed"
	ResultIgnored   ProcessResult = "ignored"
)

// maxSaveAttempts bounds the optimistic-write retry loop. Conflicts are rare
// (a duplicate delivery racing the original); if the account is this
// contended the processor can redeliver.
const maxSaveAttempts = 3

// WebhookService runs the webhook pipeline: signature verification, event
// classification, store resolution and payment reconciliation. Every failure
// comes back as an *apperrors.AppError so the endpoint maps each branch to
// exactly one response.
type WebhookService interface {
	Process(ctx context.Context, rawBody []byte, signature string, event *models.WebhookEvent) (ProcessResult, error)
}

type webhookService struct {
	signatures *SignatureService
	classifier *ClassifierService
	resolver   *StoreResolver
	notifier   alerts.Notifier
}

func NewWebhookService(
	signatures *SignatureService,
	classifier *ClassifierService,
	resolver *StoreResolver,
	notifier alerts.Notifier,
) WebhookService {
	return &webhookService{
		signatures: signatures,
		classifier: classifier,
		resolver:   resolver,
		notifier:   notifier,
	}
}

func (s *webhookService) Process(ctx context.Context, rawBody []byte, signature string, event *models.WebhookEvent) (ProcessResult, error) {
	// 1. Authenticate before anything else. The check uses the raw bytes as
	// captured by the transport, never the re-encoded parsed event.
	if signature == "" {
		return "", apperrors.ErrMissingSignature
	}
	if !s.signatures.Verify(rawBody, signature) {
		return "", apperrors.ErrInvalidSignature
	}

	// 2. Classify. Irrelevant events are acknowledged and dropped.
	if !s.classifier.Relevant(event.Event) {
		logger.CtxInfo(ctx, "Ignored webhook event", "event", event.Event)
		return ResultIgnored, nil
	}

	payment, err := s.classifier.Classify(event)
	if err != nil {
		return "", err
	}

	// 3. Resolve the application store. Unknown applications fail before any
	// store access.
	repo, err := s.resolver.Resolve(payment.App)
	if err != nil {
		return "", err
	}

	ctx = logger.WithAppName(ctx, string(payment.App))
	logger.CtxInfo(ctx, "Processing payment event",
		"status", string(payment.Status),
		"user_id", payment.UserID,
		"reference", payment.Reference,
		"amount", float64(payment.AmountMinor)/100,
	)

	// 4. Reconcile.
	if err := s.reconcile(ctx, repo, payment); err != nil {
		return "", err
	}

	logger.CtxInfo(ctx, "Payment update complete",
		"user_id", payment.UserID, "reference", payment.Reference)
	return ResultProcessed, nil
}

// reconcile applies the payment event to the account inside an optimistic
// retry loop: load, mutate, conditional save. A version conflict means a
// concurrent delivery updated the account first; reloading and reapplying is
// safe because ApplyPayment is idempotent per reference.
func (s *webhookService) reconcile(ctx context.Context, repo repositories.AccountRepository, payment *models.PaymentEvent) error {
	var lastErr error

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		account, err := repo.FindByID(payment.UserID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrAccountNotFound) {
				s.notifier.AccountNotFound(ctx, string(payment.App), payment.UserID, payment.Reference)
				return apperrors.ErrAccountNotFound
			}
			s.notifier.PersistenceFailure(ctx, string(payment.App), payment.UserID, payment.Reference, err)
			return apperrors.ErrPersistence.WithError(err)
		}

		if err := account.ApplyPayment(payment.Reference, payment.AmountMinor, payment.Status, time.Now()); err != nil {
			return apperrors.ErrPersistence.WithError(err)
		}

		err = repo.Save(account)
		if err == nil {
			return nil
		}
		if !apperrors.Is(err, repositories.ErrVersionConflict) {
			s.notifier.PersistenceFailure(ctx, string(payment.App), payment.UserID, payment.Reference, err)
			return apperrors.ErrPersistence.WithError(err)
		}

		lastErr = err
		logger.CtxWarn(ctx, "Account write conflict, retrying",
			"user_id", payment.UserID, "attempt", attempt)
	}

	s.notifier.PersistenceFailure(ctx, string(payment.App), payment.UserID, payment.Reference, lastErr)
	return apperrors.ErrWriteConflict.WithError(lastErr)
}
