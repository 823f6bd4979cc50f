package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusDraft, true},
		{InvoiceStatusSent, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusCancelled, true},
		{InvoiceStatus("archived"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoice_Recalculate(t *testing.T) {
	inv := &Invoice{Amount: d("1000000"), TaxRate: d("11"), PaidAmount: d("500000")}
	inv.Recalculate()

	assert.True(t, d("110000").Equal(inv.TaxAmount))
	assert.True(t, d("1110000").Equal(inv.TotalAmount))
	assert.True(t, d("610000").Equal(inv.RemainingAmount))
	assert.Equal(t, PaymentStatusPartial, inv.PaymentStatus)

	inv.PaidAmount = d("1110000")
	inv.Recalculate()
	assert.True(t, inv.RemainingAmount.IsZero())
	assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusUnpaid, DerivePaymentStatus(d("100"), d("0")))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(d("100"), d("1")))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(d("100"), d("100")))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(d("100"), d("150")))
}

func TestInvoice_CurrencyCode(t *testing.T) {
	assert.Equal(t, "IDR", (&Invoice{}).CurrencyCode())
	assert.Equal(t, "USD", (&Invoice{Currency: "usd"}).CurrencyCode())
}

func TestInvoice_IsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	laterToday := now.Add(5 * time.Hour)

	assert.True(t, (&Invoice{Status: InvoiceStatusSent, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Invoice{Status: InvoiceStatusSent, DueDate: &laterToday}).IsOverdue(now))
	assert.True(t, (&Invoice{Status: InvoiceStatusOverdue}).IsOverdue(now))
	assert.False(t, (&Invoice{Status: InvoiceStatusPaid, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Invoice{Status: InvoiceStatusCancelled, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Invoice{Status: InvoiceStatusSent}).IsOverdue(now))
}
