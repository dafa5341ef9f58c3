package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// InvoiceStore is the single source of truth for the invoice collection
// visible to the UI layer. Every mutation flows through it: validation,
// the backend call, and the local state merge.
//
// Collection updates are atomic replacements, never partial in-place
// edits, so readers can only observe complete states. Failed backend calls
// record an error message and leave the collection as it was; there is no
// optimistic local change to roll back.
type InvoiceStore struct {
	mu      sync.Mutex
	backend Backend
	log     zerolog.Logger

	invoices []models.Invoice
	filters  []models.Status
	total    int
	limit    int
	offset   int
	loading  bool
	lastErr  string
}

// NewInvoiceStore builds a store over the given backend with the given
// page size.
func NewInvoiceStore(backend Backend, pageSize int) *InvoiceStore {
	return &InvoiceStore{
		backend: backend,
		limit:   pageSize,
		log:     logger.WithComponent("invoice-store"),
	}
}

// List fetches the current page using the active filters and replaces the
// visible collection. It must be re-run whenever filters or the pagination
// window change; ToggleFilter and SetPage do so themselves.
func (s *InvoiceStore) List(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	filters := s.filters
	limit, offset := s.limit, s.offset
	s.mu.Unlock()

	page, err := s.backend.ListInvoices(ctx, filters, limit, offset)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		s.log.Warn().Err(err).Msg("Listing invoices failed")
		return err
	}
	s.invoices = page.Invoices
	s.total = page.Total
	s.limit = page.Limit
	s.offset = page.Offset
	return nil
}

// FetchOne retrieves a single invoice by id and upserts it into the
// collection. Direct navigation to a detail view may land on an id the
// current page never loaded.
func (s *InvoiceStore) FetchOne(ctx context.Context, id string) (models.Invoice, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	inv, err := s.backend.GetInvoice(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return models.Invoice{}, err
	}
	s.invoices = upsertByID(s.invoices, inv)
	return inv, nil
}

// Create validates the form values for the requested submission mode, asks
// the backend to create the invoice, and inserts the result at the front
// of the collection. Validation failures never reach the backend.
func (s *InvoiceStore) Create(ctx context.Context, values models.FormValues, mode models.Status) (models.Invoice, error) {
	if err := validate(values, mode); err != nil {
		return models.Invoice{}, err
	}

	inv, err := s.backend.CreateInvoice(ctx, values, mode)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Invoice{}, err
	}
	s.invoices = prepend(s.invoices, inv)
	s.total++
	s.log.Info().Str("id", inv.ID).Str("status", string(inv.Status)).Msg("Invoice created")
	return inv, nil
}

// Update validates strictly (edits always target a complete invoice),
// sends the full update, and replaces the matching entity in place.
func (s *InvoiceStore) Update(ctx context.Context, id string, values models.FormValues) (models.Invoice, error) {
	if err := validate(values, models.StatusPending); err != nil {
		return models.Invoice{}, err
	}

	inv, err := s.backend.UpdateInvoice(ctx, id, values)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Invoice{}, err
	}
	s.invoices = replaceByID(s.invoices, inv)
	return inv, nil
}

// Delete removes the invoice remotely, then locally. Local removal never
// precedes remote confirmation: a rejected delete must not make the
// invoice vanish from view.
func (s *InvoiceStore) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteInvoice(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = removeByID(s.invoices, id)
	if s.total > 0 {
		s.total--
	}
	s.log.Info().Str("id", id).Msg("Invoice deleted")
	return nil
}

// MarkPaid transitions the invoice to paid. The action is only meaningful
// for pending invoices; backends reject other states.
func (s *InvoiceStore) MarkPaid(ctx context.Context, id string) (models.Invoice, error) {
	inv, err := s.backend.MarkPaid(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Invoice{}, err
	}
	s.invoices = replaceByID(s.invoices, inv)
	return inv, nil
}

// Duplicate clones an invoice into a new entity with a fresh id, inserts
// it at the front of the collection, and returns it so the caller can
// navigate to it.
func (s *InvoiceStore) Duplicate(ctx context.Context, id string) (models.Invoice, error) {
	inv, err := s.backend.DuplicateInvoice(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		return models.Invoice{}, err
	}
	s.invoices = prepend(s.invoices, inv)
	s.total++
	return inv, nil
}

// ToggleFilter adds or removes a status from the active filter set, resets
// pagination to the first page, and re-lists exactly once.
func (s *InvoiceStore) ToggleFilter(ctx context.Context, status models.Status) error {
	s.mu.Lock()
	s.filters = toggleStatus(s.filters, status)
	s.offset = 0
	s.mu.Unlock()
	return s.List(ctx)
}

// SetPage moves the pagination offset and re-lists.
func (s *InvoiceStore) SetPage(ctx context.Context, offset int) error {
	s.mu.Lock()
	s.offset = offset
	s.mu.Unlock()
	return s.List(ctx)
}

// Invoices returns the visible collection.
func (s *InvoiceStore) Invoices() []models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoices
}

// Filters returns the active status filters; empty means "show all".
func (s *InvoiceStore) Filters() []models.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Window returns the pagination state: total count known to the backend,
// page size, and current offset.
func (s *InvoiceStore) Window() (total, limit, offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, s.limit, s.offset
}

// Loading reports whether a fetch is in flight.
func (s *InvoiceStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last orchestration error message, empty when the most
// recent operation succeeded.
func (s *InvoiceStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// validate maps the submission mode onto a validation tier and wraps any
// violations in a ValidationFailedError.
func validate(values models.FormValues, mode models.Status) error {
	tier := invoice.ModePending
	if mode == models.StatusDraft {
		tier = invoice.ModeDraft
	}
	if v := invoice.ValidateInvoice(values, tier); !v.Empty() {
		return &invoice.ValidationFailedError{Violations: v}
	}
	return nil
}
