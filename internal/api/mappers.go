package api

import (
	"invoicectl/pkg/models"
)

// fromWireInvoice translates a server invoice to the client's canonical
// representation, coercing numeric-string fields along the way.
func fromWireInvoice(w wireInvoice) models.Invoice {
	items := make([]models.InvoiceItem, len(w.Items))
	for i, it := range w.Items {
		items[i] = models.InvoiceItem{
			Name:     it.Name,
			Quantity: float64(it.Quantity),
			Price:    float64(it.Price),
			Total:    float64(it.Total),
		}
	}
	return models.Invoice{
		ID:            w.ID,
		CreatedAt:     w.CreatedAt,
		PaymentDue:    w.PaymentDue,
		Description:   w.Description,
		PaymentTerms:  models.PaymentTerms(w.PaymentTerms),
		ClientName:    w.ClientName,
		ClientEmail:   w.ClientEmail,
		Status:        models.Status(w.Status),
		SenderAddress: fromWireAddress(w.SenderAddress),
		ClientAddress: fromWireAddress(w.ClientAddress),
		Items:         items,
		Subtotal:      float64(w.Subtotal),
		TaxRate:       float64(w.TaxRate),
		TaxAmount:     float64(w.TaxAmount),
		Total:         float64(w.Total),
		IsOverdue:     w.IsOverdue,
	}
}

func fromWireAddress(w wireAddress) models.Address {
	return models.Address{Street: w.Street, City: w.City, PostCode: w.PostCode, Country: w.Country}
}

func fromWireUser(w wireUser) models.User {
	return models.User{ID: w.ID, Email: w.Email, Name: w.Name, CreatedAt: w.CreatedAt}
}

// toCreateBody builds the creation payload. The submit mode travels only on
// create; it tells the backend whether the new invoice starts as a draft or
// goes straight to pending.
func toCreateBody(values models.FormValues, mode models.Status) invoiceBody {
	body := toUpdateBody(values)
	body.SubmitMode = string(mode)
	return body
}

// toUpdateBody builds the full-update payload, omitting every derived and
// server-owned field.
func toUpdateBody(values models.FormValues) invoiceBody {
	items := make([]itemBody, len(values.Items))
	for i, it := range values.Items {
		items[i] = itemBody{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	return invoiceBody{
		CreatedAt:     values.CreatedAt,
		Description:   values.Description,
		PaymentTerms:  int(values.PaymentTerms),
		ClientName:    values.ClientName,
		ClientEmail:   values.ClientEmail,
		SenderAddress: toWireAddress(values.SenderAddress),
		ClientAddress: toWireAddress(values.ClientAddress),
		Items:         items,
		TaxRate:       values.TaxRate,
	}
}

func toWireAddress(a models.Address) wireAddress {
	return wireAddress{Street: a.Street, City: a.City, PostCode: a.PostCode, Country: a.Country}
}
