package alerts

import (
	"context"

	"payhook_backend/internal/config"
	"payhook_backend/internal/logger"
)

// Notifier raises operator alerts for conditions that signal a
// data-consistency or infrastructure problem rather than a bad request.
// Implementations must never fail the webhook: alerting is best effort.
type Notifier interface {
	// AccountNotFound fires when an authenticated event references an
	// account that does not exist in its application store. That means the
	// upstream registration flow and the processor disagree.
	AccountNotFound(ctx context.Context, app, userID, reference string)

	// PersistenceFailure fires when an account update could not be saved
	// and the processor was asked to redeliver.
	PersistenceFailure(ctx context.Context, app, userID, reference string, err error)
}

// NewNotifier picks the mail notifier when SMTP is configured, otherwise
// alerts go to the log only.
func NewNotifier(cfg *config.Config) Notifier {
	if cfg.Alerts.SMTPHost != "" && len(cfg.Alerts.ToEmails) > 0 {
		return NewMailNotifier(cfg)
	}
	logger.Warn("Alert mailer not configured, operator alerts will be log-only")
	return &LogNotifier{}
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct{}

func (n *LogNotifier) AccountNotFound(ctx context.Context, app, userID, reference string) {
	logger.CtxError(ctx, "ALERT: account referenced by webhook does not exist",
		"app", app, "user_id", userID, "reference", reference)
}

func (n *LogNotifier) PersistenceFailure(ctx context.Context, app, userID, reference string, err error) {
	logger.CtxWithError(ctx, "ALERT: failed to persist webhook payment update", err,
		"app", app, "user_id", userID, "reference", reference)
}
