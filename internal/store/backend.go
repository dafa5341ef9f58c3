// Package store holds the two client-side state containers: the invoice
// store (the collection visible to the UI layer and the orchestrator of
// every mutation) and the auth store (the session lifecycle). Neither is a
// global; both are constructed in main and handed to the commands.
package store

import (
	"context"

	"invoicectl/pkg/models"
)

// Backend is the invoice persistence the store orchestrates against. Two
// implementations exist: the REST gateway (api.Client) and the sqlite
// store (localdata.Store). The invoice store behaves identically over
// either.
type Backend interface {
	ListInvoices(ctx context.Context, statuses []models.Status, limit, offset int) (models.Page, error)
	GetInvoice(ctx context.Context, id string) (models.Invoice, error)
	CreateInvoice(ctx context.Context, values models.FormValues, mode models.Status) (models.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, values models.FormValues) (models.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) (models.Invoice, error)
	DuplicateInvoice(ctx context.Context, id string) (models.Invoice, error)
}

// AuthBackend is the session-lifecycle surface of the API gateway.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Me(ctx context.Context) (models.User, error)
}
