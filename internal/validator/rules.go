package validator

import (
	"log"

	"payhook_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the custom validation functions on the given
// validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup misconfiguration.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-payment-status': the processor-side status vocabulary
	mustRegister("is-payment-status", validatePaymentStatus)
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is the job of 'required'
	}

	switch models.PaymentStatus(value) {
	case models.PaymentStatusPending, models.PaymentStatusSuccess, models.PaymentStatusFailed:
		return true
	default:
		return false
	}
}
