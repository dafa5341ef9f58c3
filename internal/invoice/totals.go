// Package invoice holds the domain core of the client: the derived-field
// calculator and the validation rule sets.
//
// Every derived value on an invoice (line totals, subtotal, tax amount,
// grand total, payment due date, overdue flag) is produced here from raw
// form input. Callers never author these fields; any value arriving from a
// form is discarded and recomputed.
//
// All functions in this file are pure: no clock access, no logging, no
// mutation of their inputs. The current date is always an explicit
// parameter so results are reproducible.
package invoice

import (
	"math"
	"time"

	"invoicectl/pkg/models"
)

// DateLayout is the date-only format used throughout the client.
const DateLayout = "2006-01-02"

// LineTotal returns the derived total for a single line: quantity * price.
// Integer inputs produce exact results; no rounding is applied per line.
func LineTotal(quantity, price float64) float64 {
	return quantity * price
}

// Subtotal sums the line totals of the given raw items.
// An empty list yields 0, which is not an error by itself; rejecting empty
// item lists is the strict validator's concern.
func Subtotal(items []models.ItemValues) float64 {
	var sum float64
	for _, it := range items {
		sum += LineTotal(it.Quantity, it.Price)
	}
	return sum
}

// TaxAmount returns round2(subtotal * rate / 100), matching currency
// display rounding at 2 decimal places.
func TaxAmount(subtotal, rate float64) float64 {
	return round2(subtotal * rate / 100)
}

// PaymentDue adds the payment terms to the creation date in calendar days,
// crossing month and year boundaries as the calendar does.
// An empty or unparsable creation date yields an empty due date; drafts may
// legitimately carry no date yet.
func PaymentDue(createdAt string, terms models.PaymentTerms) string {
	t, err := time.Parse(DateLayout, createdAt)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, int(terms)).Format(DateLayout)
}

// Overdue reports whether an invoice with the given due date and status is
// overdue as of today. The comparison is date-only; time of day on `today`
// is ignored. Paid invoices are never overdue, regardless of date.
func Overdue(paymentDue string, status models.Status, today time.Time) bool {
	if status == models.StatusPaid {
		return false
	}
	due, err := time.Parse(DateLayout, paymentDue)
	if err != nil {
		return false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(day)
}

// Derive builds a fully-populated invoice from raw form values. The id is
// left empty; assignment is the backend's job. Calling Derive twice with
// the same inputs yields identical results.
func Derive(values models.FormValues, status models.Status, today time.Time) models.Invoice {
	items := make([]models.InvoiceItem, len(values.Items))
	for i, it := range values.Items {
		items[i] = models.InvoiceItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    LineTotal(it.Quantity, it.Price),
		}
	}

	subtotal := Subtotal(values.Items)
	tax := TaxAmount(subtotal, values.TaxRate)
	due := PaymentDue(values.CreatedAt, values.PaymentTerms)

	return models.Invoice{
		CreatedAt:     values.CreatedAt,
		PaymentDue:    due,
		Description:   values.Description,
		PaymentTerms:  values.PaymentTerms,
		ClientName:    values.ClientName,
		ClientEmail:   values.ClientEmail,
		Status:        status,
		SenderAddress: values.SenderAddress,
		ClientAddress: values.ClientAddress,
		Items:         items,
		Subtotal:      subtotal,
		TaxRate:       values.TaxRate,
		TaxAmount:     tax,
		Total:         subtotal + tax,
		IsOverdue:     Overdue(due, status, today),
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
