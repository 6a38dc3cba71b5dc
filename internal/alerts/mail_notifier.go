package alerts

import (
	"context"
	"fmt"

	"payhook_backend/internal/config"
	"payhook_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// MailNotifier emails operator alerts over SMTP. Sends run in their own
// goroutine so a slow mail server never delays the webhook response, and a
// send failure is logged, never propagated.
type MailNotifier struct {
	cfg *config.Config
}

func NewMailNotifier(cfg *config.Config) *MailNotifier {
	return &MailNotifier{cfg: cfg}
}

func (n *MailNotifier) AccountNotFound(ctx context.Context, app, userID, reference string) {
	requestID := logger.GetRequestID(ctx)
	logger.CtxError(ctx, "ALERT: account referenced by webhook does not exist",
		"app", app, "user_id", userID, "reference", reference)

	subject := fmt.Sprintf("[payhook][%s] account not found for webhook", app)
	body := fmt.Sprintf(
		"A signed payment event referenced an account that is missing from the %s store.\n\n"+
			"User ID:    %s\nReference:  %s\nRequest ID: %s\n\n"+
			"This points at a registration/processor mismatch and needs investigation.",
		app, userID, reference, requestID,
	)
	go n.send(subject, body)
}

func (n *MailNotifier) PersistenceFailure(ctx context.Context, app, userID, reference string, err error) {
	requestID := logger.GetRequestID(ctx)
	logger.CtxWithError(ctx, "ALERT: failed to persist webhook payment update", err,
		"app", app, "user_id", userID, "reference", reference)

	subject := fmt.Sprintf("[payhook][%s] payment update not persisted", app)
	body := fmt.Sprintf(
		"A payment event could not be saved; the processor was answered with 500 and will redeliver.\n\n"+
			"User ID:    %s\nReference:  %s\nRequest ID: %s\nError:      %v",
		userID, reference, requestID, err,
	)
	go n.send(subject, body)
}

func (n *MailNotifier) send(subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.Alerts.FromEmail)
	m.SetHeader("To", n.cfg.Alerts.ToEmails...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		n.cfg.Alerts.SMTPHost,
		n.cfg.Alerts.SMTPPort,
		n.cfg.Alerts.SMTPUser,
		n.cfg.Alerts.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		logger.WithError(err).Error("Failed to send alert email", "subject", subject)
	}
}
