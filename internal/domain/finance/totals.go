package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// InvoiceTotals holds the amounts derived from a subtotal and a tax rate
type InvoiceTotals struct {
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeInvoiceTotals returns tax = subtotal*rate/100 and total = subtotal+tax, both rounded to 2 places.
func ComputeInvoiceTotals(subtotal, taxRatePercent decimal.Decimal) InvoiceTotals {
	tax := subtotal.Mul(taxRatePercent).Div(hundred).Round(2)
	return InvoiceTotals{
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax).Round(2),
	}
}

// Remaining is the outstanding balance of an invoice.
// Display is floored at zero; Raw keeps overpayments as negative values for audit.
type Remaining struct {
	Display decimal.Decimal
	Raw     decimal.Decimal
}

// IsSettled reports whether nothing is left to pay
func (r Remaining) IsSettled() bool {
	return r.Display.IsZero()
}

// IsOverpaid reports whether more was paid than owed
func (r Remaining) IsOverpaid() bool {
	return r.Raw.IsNegative()
}

// ComputeRemaining returns max(total-paid, 0) for display along with the raw difference.
func ComputeRemaining(totalAmount, paidAmount decimal.Decimal) Remaining {
	raw := totalAmount.Sub(paidAmount)
	display := raw
	if display.IsNegative() {
		display = decimal.Zero
	}
	return Remaining{Display: display, Raw: raw}
}

// Percentage returns round(part/whole*100), or 0 when whole is zero.
func Percentage(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Div(whole).Mul(hundred).Round(0).IntPart())
}
