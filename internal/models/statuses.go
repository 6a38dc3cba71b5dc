package models

type PaymentStatus string
type AppName string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"

	// Known applications. The set is closed: each one owns an isolated
	// account store and the resolver table enumerates exactly these.
	AppPsrTest AppName = "psrtest"
	AppEduTest AppName = "edutest"
)

// Relevant processor event types. Everything else is acknowledged and ignored.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// NormalizeStatus maps the processor-side status onto our enum: anything
// other than "success" is recorded as failed, matching the processor's
// charge lifecycle.
func NormalizeStatus(raw string) PaymentStatus {
	if raw == string(PaymentStatusSuccess) {
		return PaymentStatusSuccess
	}
	return PaymentStatusFailed
}
