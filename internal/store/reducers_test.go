package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicectl/pkg/models"
)

func ids(invoices []models.Invoice) []string {
	out := make([]string, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.ID
	}
	return out
}

func TestPrepend(t *testing.T) {
	got := prepend([]models.Invoice{{ID: "B"}, {ID: "C"}}, models.Invoice{ID: "A"})
	assert.Equal(t, []string{"A", "B", "C"}, ids(got))
}

func TestUpsertByID(t *testing.T) {
	base := []models.Invoice{{ID: "A", Total: 1}, {ID: "B", Total: 2}}

	replaced := upsertByID(base, models.Invoice{ID: "B", Total: 20})
	assert.Equal(t, []string{"A", "B"}, ids(replaced))
	assert.Equal(t, 20.0, replaced[1].Total)

	inserted := upsertByID(base, models.Invoice{ID: "C"})
	assert.Equal(t, []string{"C", "A", "B"}, ids(inserted))

	// The input slice is never mutated.
	assert.Equal(t, 2.0, base[1].Total)
}

func TestReplaceByID(t *testing.T) {
	base := []models.Invoice{{ID: "A"}, {ID: "B"}}

	got := replaceByID(base, models.Invoice{ID: "B", Total: 9})
	assert.Equal(t, 9.0, got[1].Total)

	// Unknown ids leave the collection untouched.
	got = replaceByID(base, models.Invoice{ID: "Z"})
	assert.Equal(t, []string{"A", "B"}, ids(got))
}

func TestRemoveByID(t *testing.T) {
	base := []models.Invoice{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	assert.Equal(t, []string{"A", "C"}, ids(removeByID(base, "B")))
	assert.Equal(t, []string{"A", "B", "C"}, ids(removeByID(base, "Z")))
}

func TestToggleStatus(t *testing.T) {
	var filters []models.Status

	filters = toggleStatus(filters, models.StatusDraft)
	assert.Equal(t, []models.Status{models.StatusDraft}, filters)

	filters = toggleStatus(filters, models.StatusPaid)
	assert.Equal(t, []models.Status{models.StatusDraft, models.StatusPaid}, filters)

	filters = toggleStatus(filters, models.StatusDraft)
	assert.Equal(t, []models.Status{models.StatusPaid}, filters)
}
