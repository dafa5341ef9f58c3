package store

import "invoicectl/pkg/models"

// Pure collection transitions, kept free of network and locking concerns so
// they can be tested in isolation.

// prepend inserts inv at the front of the collection.
func prepend(invoices []models.Invoice, inv models.Invoice) []models.Invoice {
	out := make([]models.Invoice, 0, len(invoices)+1)
	out = append(out, inv)
	return append(out, invoices...)
}

// upsertByID replaces the invoice with inv's id in place, or prepends it
// when absent.
func upsertByID(invoices []models.Invoice, inv models.Invoice) []models.Invoice {
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			out := make([]models.Invoice, len(invoices))
			copy(out, invoices)
			out[i] = inv
			return out
		}
	}
	return prepend(invoices, inv)
}

// replaceByID swaps the invoice with inv's id in place; absent ids leave
// the collection untouched.
func replaceByID(invoices []models.Invoice, inv models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	copy(out, invoices)
	for i := range out {
		if out[i].ID == inv.ID {
			out[i] = inv
			break
		}
	}
	return out
}

// removeByID filters the invoice with the given id out of the collection.
func removeByID(invoices []models.Invoice, id string) []models.Invoice {
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.ID != id {
			out = append(out, inv)
		}
	}
	return out
}

// toggleStatus adds status to the filter set or removes it when present.
func toggleStatus(filters []models.Status, status models.Status) []models.Status {
	out := make([]models.Status, 0, len(filters)+1)
	found := false
	for _, f := range filters {
		if f == status {
			found = true
			continue
		}
		out = append(out, f)
	}
	if !found {
		out = append(out, status)
	}
	return out
}
