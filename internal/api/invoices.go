package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"invoicectl/pkg/models"
)

// ListInvoices fetches a page of invoices. Statuses are encoded as a single
// comma-joined query parameter; an empty filter set means "show all".
func (c *Client) ListInvoices(ctx context.Context, statuses []models.Status, limit, offset int) (models.Page, error) {
	params := url.Values{}
	if len(statuses) > 0 {
		parts := make([]string, len(statuses))
		for i, s := range statuses {
			parts[i] = string(s)
		}
		params.Set("status", strings.Join(parts, ","))
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var list wireInvoiceList
	if err := c.do(ctx, http.MethodGet, "/invoices?"+params.Encode(), nil, &list); err != nil {
		return models.Page{}, err
	}

	invoices := make([]models.Invoice, len(list.Items))
	for i, w := range list.Items {
		invoices[i] = fromWireInvoice(w)
	}
	return models.Page{Invoices: invoices, Total: list.Total, Limit: list.Limit, Offset: list.Offset}, nil
}

// GetInvoice fetches a single invoice by id.
func (c *Client) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	var w wireInvoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, &w); err != nil {
		return models.Invoice{}, err
	}
	return fromWireInvoice(w), nil
}

// CreateInvoice submits raw form values. The submit mode decides whether
// the backend stores the invoice as a draft or as pending.
func (c *Client) CreateInvoice(ctx context.Context, values models.FormValues, mode models.Status) (models.Invoice, error) {
	var w wireInvoice
	if err := c.do(ctx, http.MethodPost, "/invoices", toCreateBody(values, mode), &w); err != nil {
		return models.Invoice{}, err
	}
	return fromWireInvoice(w), nil
}

// UpdateInvoice replaces an invoice's authored fields in full.
func (c *Client) UpdateInvoice(ctx context.Context, id string, values models.FormValues) (models.Invoice, error) {
	var w wireInvoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+url.PathEscape(id), toUpdateBody(values), &w); err != nil {
		return models.Invoice{}, err
	}
	return fromWireInvoice(w), nil
}

// DeleteInvoice removes an invoice permanently.
func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil, nil)
}

// MarkPaid transitions an invoice to the paid state.
func (c *Client) MarkPaid(ctx context.Context, id string) (models.Invoice, error) {
	var w wireInvoice
	if err := c.do(ctx, http.MethodPatch, "/invoices/"+url.PathEscape(id)+"/mark-paid", nil, &w); err != nil {
		return models.Invoice{}, err
	}
	return fromWireInvoice(w), nil
}

// DuplicateInvoice clones an invoice server-side and returns the new entity.
func (c *Client) DuplicateInvoice(ctx context.Context, id string) (models.Invoice, error) {
	var w wireInvoice
	if err := c.do(ctx, http.MethodPost, "/invoices/"+url.PathEscape(id)+"/duplicate", nil, &w); err != nil {
		return models.Invoice{}, err
	}
	return fromWireInvoice(w), nil
}

// InvoicePDF downloads the rendered PDF for an invoice.
func (c *Client) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	data, err := c.getBytes(ctx, "/invoices/"+url.PathEscape(id)+"/pdf")
	if err != nil {
		return nil, fmt.Errorf("fetching invoice PDF: %w", err)
	}
	return data, nil
}

// SendInvoiceEmail asks the backend to deliver the invoice by email.
func (c *Client) SendInvoiceEmail(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/invoices/"+url.PathEscape(id)+"/send-email", nil, nil)
}
