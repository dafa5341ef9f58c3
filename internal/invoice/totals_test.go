package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicectl/pkg/models"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		want     float64
	}{
		{"integers multiply exactly", 3, 200, 600},
		{"zero quantity", 0, 99.99, 0},
		{"zero price", 4, 0, 0},
		{"fractional price", 2, 1.25, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineTotal(tt.quantity, tt.price))
		})
	}
}

func TestSubtotal(t *testing.T) {
	items := []models.ItemValues{
		{Name: "Banner Design", Quantity: 1, Price: 156},
		{Name: "Email Design", Quantity: 2, Price: 200},
	}
	assert.Equal(t, 556.0, Subtotal(items))

	assert.Equal(t, 0.0, Subtotal(nil), "empty list is not an error, just zero")
}

func TestTaxAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		rate     float64
		want     float64
	}{
		{"no tax", 556, 0, 0},
		{"even percentage", 1000, 10, 100},
		{"rounds to 2 decimals", 333, 7, 23.31},
		{"rounds half up", 12.50, 5, 0.63}, // 0.625 -> 0.63
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaxAmount(tt.subtotal, tt.rate))
		})
	}
}

func TestPaymentDue(t *testing.T) {
	tests := []struct {
		name      string
		createdAt string
		terms     models.PaymentTerms
		want      string
	}{
		{"same month", "2024-03-01", models.TermsNet7, "2024-03-08"},
		{"crosses month boundary", "2024-01-25", models.TermsNet14, "2024-02-08"},
		{"crosses year boundary", "2024-12-20", models.TermsNet30, "2025-01-19"},
		{"leap february", "2024-02-28", models.TermsNet1, "2024-02-29"},
		{"empty creation date", "", models.TermsNet30, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentDue(tt.createdAt, tt.terms))
		})
	}
}

func TestOverdue(t *testing.T) {
	today := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name       string
		paymentDue string
		status     models.Status
		want       bool
	}{
		{"due yesterday, pending", "2024-06-14", models.StatusPending, true},
		{"due today is not overdue", "2024-06-15", models.StatusPending, false},
		{"due tomorrow", "2024-06-16", models.StatusPending, false},
		{"paid is never overdue", "2020-01-01", models.StatusPaid, false},
		{"draft past due", "2024-06-01", models.StatusDraft, true},
		{"no due date", "", models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overdue(tt.paymentDue, tt.status, today))
		})
	}
}

func TestDerive(t *testing.T) {
	values := models.FormValues{
		CreatedAt:    "2024-01-25",
		Description:  "Re-branding",
		PaymentTerms: models.TermsNet14,
		ClientName:   "Jensen Huang",
		ClientEmail:  "jensenh@mail.com",
		Items: []models.ItemValues{
			{Name: "Brand Guidelines", Quantity: 1, Price: 1800.90},
		},
		TaxRate: 10,
	}
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	inv := Derive(values, models.StatusPending, today)

	assert.Empty(t, inv.ID, "id assignment belongs to the backend")
	assert.Equal(t, "2024-02-08", inv.PaymentDue)
	assert.Equal(t, 1800.90, inv.Items[0].Total)
	assert.Equal(t, 1800.90, inv.Subtotal)
	assert.Equal(t, 180.09, inv.TaxAmount)
	assert.InDelta(t, 1980.99, inv.Total, 1e-9)
	assert.True(t, inv.IsOverdue)

	// Referential transparency: same input, same output.
	assert.Equal(t, inv, Derive(values, models.StatusPending, today))
}

func TestDeriveEmptySkeleton(t *testing.T) {
	inv := Derive(models.FormValues{PaymentTerms: models.TermsNet30}, models.StatusDraft, time.Now())

	assert.Equal(t, 0.0, inv.Subtotal)
	assert.Equal(t, 0.0, inv.Total)
	assert.Empty(t, inv.PaymentDue)
	assert.False(t, inv.IsOverdue)
	assert.Len(t, inv.Items, 0)
}
