package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// PaymentRecord is one payment attempt inside an account's history. Records
// are owned exclusively by their account and stored embedded in its row.
type PaymentRecord struct {
	Reference  string        `json:"reference"`
	Amount     float64       `json:"amount"` // major units, already divided by 100
	Status     PaymentStatus `json:"status"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// UserAccount is a row in one of the per-application account stores.
// Accounts are created by registration flows outside this service; the
// webhook core only mutates PaymentHistory, IsPaid and Version.
type UserAccount struct {
	ID             string         `gorm:"primaryKey;type:uuid"`
	Email          string         `gorm:"uniqueIndex;not null"` // stored lowercase
	IsPaid         bool           `gorm:"default:false"`
	PaymentHistory datatypes.JSON `gorm:"type:jsonb"`
	// Version backs the optimistic compare-and-swap write. Every successful
	// save increments it; a stale save touches zero rows.
	Version   int64 `gorm:"default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// History decodes the embedded payment history.
func (a *UserAccount) History() ([]PaymentRecord, error) {
	if len(a.PaymentHistory) == 0 {
		return nil, nil
	}
	var records []PaymentRecord
	if err := json.Unmarshal(a.PaymentHistory, &records); err != nil {
		return nil, fmt.Errorf("failed to decode payment history for account %s: %w", a.ID, err)
	}
	return records, nil
}

// SetHistory encodes the payment history back into the JSONB column.
func (a *UserAccount) SetHistory(records []PaymentRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode payment history for account %s: %w", a.ID, err)
	}
	a.PaymentHistory = datatypes.JSON(data)
	return nil
}

// ApplyPayment applies one payment event to the account.
//
// References are unique within one history: an existing record with the same
// reference gets its status updated in place, otherwise a new record is
// appended with the amount converted from minor to major units. IsPaid is a
// one-way latch: a success sets it true and nothing in this service ever
// clears it, so the record status always reflects the most recent event
// while IsPaid remembers that at least one attempt succeeded.
func (a *UserAccount) ApplyPayment(reference string, amountMinor int64, status PaymentStatus, now time.Time) error {
	records, err := a.History()
	if err != nil {
		return err
	}

	found := false
	for i := range records {
		if records[i].Reference == reference {
			records[i].Status = status
			found = true
			break
		}
	}

	if !found {
		records = append(records, PaymentRecord{
			Reference:  reference,
			Amount:     float64(amountMinor) / 100,
			Status:     status,
			RecordedAt: now,
		})
	}

	if status == PaymentStatusSuccess {
		a.IsPaid = true
	}

	return a.SetHistory(records)
}

// NormalizeEmail lowercases the account email the way the stores index it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
