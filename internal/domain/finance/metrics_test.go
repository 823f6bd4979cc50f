package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateReportMetrics_Empty(t *testing.T) {
	m := AggregateReportMetrics(nil, time.Now())

	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.PaidRevenue.IsZero())
	assert.True(t, m.PendingRevenue.IsZero())
	assert.True(t, m.OverdueRevenue.IsZero())
	assert.Equal(t, 0, m.TotalInvoices)
	assert.Equal(t, 0, m.PaidInvoices)
	assert.Equal(t, 0, m.CollectionRate())
	assert.Equal(t, 0, m.PendingInvoices())
}

func TestAggregateReportMetrics(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	invoices := []Invoice{
		{Status: InvoiceStatusPaid, PaymentStatus: PaymentStatusPaid, TotalAmount: d("1000"), PaidAmount: d("1000"), DueDate: &past},
		{Status: InvoiceStatusSent, PaymentStatus: PaymentStatusPartial, TotalAmount: d("500"), PaidAmount: d("200"), DueDate: &past},
		{Status: InvoiceStatusSent, PaymentStatus: PaymentStatusUnpaid, TotalAmount: d("300"), PaidAmount: d("0"), DueDate: &future},
		{Status: InvoiceStatusCancelled, TotalAmount: d("700"), DueDate: &past},
	}

	m := AggregateReportMetrics(invoices, now)

	assert.True(t, d("2500").Equal(m.TotalRevenue), m.TotalRevenue.String())
	assert.True(t, d("1000").Equal(m.PaidRevenue), m.PaidRevenue.String())
	assert.True(t, d("300").Equal(m.OverdueRevenue), m.OverdueRevenue.String())
	assert.True(t, d("300").Equal(m.PendingRevenue), m.PendingRevenue.String())
	assert.Equal(t, 4, m.TotalInvoices)
	assert.Equal(t, 1, m.PaidInvoices)
	assert.Equal(t, 3, m.PendingInvoices())
	assert.Equal(t, 40, m.CollectionRate())
	assert.True(t, d("1500").Equal(m.Outstanding()))
}
