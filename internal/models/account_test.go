package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"
)

var applyTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestUserAccount_ApplyPaymentAppendsNewRecord(t *testing.T) {
	account := &UserAccount{ID: "u1"}

	err := account.ApplyPayment("ref1", 5000, PaymentStatusSuccess, applyTime)
	require.NoError(t, err)

	records, err := account.History()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ref1", records[0].Reference)
	assert.Equal(t, 50.00, records[0].Amount)
	assert.Equal(t, PaymentStatusSuccess, records[0].Status)
	assert.Equal(t, applyTime, records[0].RecordedAt)
	assert.True(t, account.IsPaid)
}

func TestUserAccount_ApplyPaymentConvertsMinorUnits(t *testing.T) {
	account := &UserAccount{ID: "u1"}

	require.NoError(t, account.ApplyPayment("ref1", 12345, PaymentStatusSuccess, applyTime))

	records, err := account.History()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 123.45, records[0].Amount)
}

func TestUserAccount_ApplyPaymentUpdatesInPlace(t *testing.T) {
	account := &UserAccount{ID: "u1"}

	require.NoError(t, account.ApplyPayment("ref1", 5000, PaymentStatusFailed, applyTime))
	require.NoError(t, account.ApplyPayment("ref1", 5000, PaymentStatusSuccess, applyTime.Add(time.Minute)))

	records, err := account.History()
	require.NoError(t, err)
	require.Len(t, records, 1, "same reference must not duplicate the record")
	assert.Equal(t, PaymentStatusSuccess, records[0].Status)
	assert.Equal(t, applyTime, records[0].RecordedAt, "in-place update keeps the original timestamp")
	assert.True(t, account.IsPaid)
}

func TestUserAccount_ApplyPaymentKeepsDistinctReferences(t *testing.T) {
	account := &UserAccount{ID: "u1"}

	require.NoError(t, account.ApplyPayment("ref1", 5000, PaymentStatusFailed, applyTime))
	require.NoError(t, account.ApplyPayment("ref2", 2500, PaymentStatusSuccess, applyTime))

	records, err := account.History()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ref1", records[0].Reference)
	assert.Equal(t, "ref2", records[1].Reference)
}

func TestUserAccount_IsPaidLatch(t *testing.T) {
	account := &UserAccount{ID: "u1"}

	require.NoError(t, account.ApplyPayment("ref1", 5000, PaymentStatusFailed, applyTime))
	assert.False(t, account.IsPaid, "a failed payment must not mark the account paid")

	require.NoError(t, account.ApplyPayment("ref1", 5000, PaymentStatusSuccess, applyTime))
	assert.True(t, account.IsPaid)

	require.NoError(t, account.ApplyPayment("ref1", 5000, PaymentStatusFailed, applyTime))
	assert.True(t, account.IsPaid, "IsPaid never goes back to false")

	records, err := account.History()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, PaymentStatusFailed, records[0].Status, "record status follows the latest event")
}

func TestUserAccount_ApplyPaymentCorruptHistory(t *testing.T) {
	account := &UserAccount{ID: "u1", PaymentHistory: datatypes.JSON(`{not json`)}

	err := account.ApplyPayment("ref1", 5000, PaymentStatusSuccess, applyTime)
	assert.Error(t, err)
}

func TestUserAccount_HistoryEmpty(t *testing.T) {
	account := &UserAccount{ID: "u1"}

	records, err := account.History()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentStatus
	}{
		{"success", PaymentStatusSuccess},
		{"failed", PaymentStatusFailed},
		{"abandoned", PaymentStatusFailed},
		{"reversed", PaymentStatusFailed},
		{"", PaymentStatusFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.raw), "raw status %q", tt.raw)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}
