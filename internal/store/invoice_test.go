package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicectl/internal/invoice"
	"invoicectl/pkg/models"
)

// listCall records the arguments of one ListInvoices invocation.
type listCall struct {
	statuses []models.Status
	limit    int
	offset   int
}

// fakeBackend is a scriptable Backend for store tests.
type fakeBackend struct {
	listCalls   []listCall
	listPage    models.Page
	listErr     error
	getInvoice  models.Invoice
	getErr      error
	created     models.Invoice
	createErr   error
	createCalls int
	updated     models.Invoice
	updateErr   error
	deleteErr   error
	deleted     []string
	paid        models.Invoice
	paidErr     error
	duplicated  models.Invoice
	dupErr      error
}

func (f *fakeBackend) ListInvoices(_ context.Context, statuses []models.Status, limit, offset int) (models.Page, error) {
	f.listCalls = append(f.listCalls, listCall{statuses: statuses, limit: limit, offset: offset})
	if f.listErr != nil {
		return models.Page{}, f.listErr
	}
	page := f.listPage
	if page.Limit == 0 {
		page.Limit = limit
	}
	page.Offset = offset
	return page, nil
}

func (f *fakeBackend) GetInvoice(context.Context, string) (models.Invoice, error) {
	return f.getInvoice, f.getErr
}

func (f *fakeBackend) CreateInvoice(context.Context, models.FormValues, models.Status) (models.Invoice, error) {
	f.createCalls++
	return f.created, f.createErr
}

func (f *fakeBackend) UpdateInvoice(context.Context, string, models.FormValues) (models.Invoice, error) {
	return f.updated, f.updateErr
}

func (f *fakeBackend) DeleteInvoice(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) MarkPaid(context.Context, string) (models.Invoice, error) {
	return f.paid, f.paidErr
}

func (f *fakeBackend) DuplicateInvoice(context.Context, string) (models.Invoice, error) {
	return f.duplicated, f.dupErr
}

func strictValues() models.FormValues {
	return models.FormValues{
		CreatedAt:    "2024-01-25",
		Description:  "Graphic Design",
		PaymentTerms: models.TermsNet30,
		ClientName:   "Alex Grim",
		ClientEmail:  "alexgrim@mail.com",
		SenderAddress: models.Address{
			Street: "19 Union Terrace", City: "London", PostCode: "E1 3EZ", Country: "United Kingdom",
		},
		ClientAddress: models.Address{
			Street: "84 Church Way", City: "Bradford", PostCode: "BD1 9PB", Country: "United Kingdom",
		},
		Items: []models.ItemValues{{Name: "Banner Design", Quantity: 1, Price: 156}},
	}
}

func TestListReplacesCollection(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{
		Invoices: []models.Invoice{{ID: "RT3080"}, {ID: "XM9141"}},
		Total:    12,
	}}
	s := NewInvoiceStore(backend, 20)

	require.NoError(t, s.List(context.Background()))

	assert.Equal(t, []string{"RT3080", "XM9141"}, ids(s.Invoices()))
	total, limit, offset := s.Window()
	assert.Equal(t, 12, total)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
}

func TestListFailureSetsErrorKeepsCollection(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{Invoices: []models.Invoice{{ID: "RT3080"}}, Total: 1}}
	s := NewInvoiceStore(backend, 20)
	require.NoError(t, s.List(context.Background()))

	backend.listErr = errors.New("backend unavailable")
	err := s.List(context.Background())
	require.Error(t, err)

	assert.Equal(t, "backend unavailable", s.Err())
	assert.False(t, s.Loading())
	assert.Equal(t, []string{"RT3080"}, ids(s.Invoices()), "collection replaced only on success")
}

func TestFetchOneUpserts(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{Invoices: []models.Invoice{{ID: "RT3080", Total: 1}}, Total: 1}}
	s := NewInvoiceStore(backend, 20)
	require.NoError(t, s.List(context.Background()))

	// Unknown id: inserted at the front.
	backend.getInvoice = models.Invoice{ID: "XM9141"}
	_, err := s.FetchOne(context.Background(), "XM9141")
	require.NoError(t, err)
	assert.Equal(t, []string{"XM9141", "RT3080"}, ids(s.Invoices()))

	// Known id: replaced in place.
	backend.getInvoice = models.Invoice{ID: "RT3080", Total: 99}
	_, err = s.FetchOne(context.Background(), "RT3080")
	require.NoError(t, err)
	assert.Equal(t, []string{"XM9141", "RT3080"}, ids(s.Invoices()))
	assert.Equal(t, 99.0, s.Invoices()[1].Total)
}

func TestCreateValidationBlocksSubmission(t *testing.T) {
	backend := &fakeBackend{}
	s := NewInvoiceStore(backend, 20)

	// Pending mode demands completeness; an empty skeleton must never
	// reach the backend.
	_, err := s.Create(context.Background(), models.FormValues{PaymentTerms: models.TermsNet30}, models.StatusPending)
	require.Error(t, err)

	ve, ok := invoice.AsValidationFailed(err)
	require.True(t, ok)
	assert.Equal(t, "an item must be added", ve.Violations["items"])
	assert.Equal(t, 0, backend.createCalls)
}

func TestCreateDraftAllowsEmptySkeleton(t *testing.T) {
	backend := &fakeBackend{created: models.Invoice{ID: "FV2353", Status: models.StatusDraft}}
	s := NewInvoiceStore(backend, 20)

	inv, err := s.Create(context.Background(), models.FormValues{PaymentTerms: models.TermsNet30}, models.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, "FV2353", inv.ID)
	assert.Equal(t, []string{"FV2353"}, ids(s.Invoices()), "new invoice lands at the front")
}

func TestUpdateReplacesInPlace(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{
		Invoices: []models.Invoice{{ID: "RT3080"}, {ID: "XM9141"}}, Total: 2,
	}}
	s := NewInvoiceStore(backend, 20)
	require.NoError(t, s.List(context.Background()))

	backend.updated = models.Invoice{ID: "XM9141", Description: "updated"}
	_, err := s.Update(context.Background(), "XM9141", strictValues())
	require.NoError(t, err)

	assert.Equal(t, []string{"RT3080", "XM9141"}, ids(s.Invoices()))
	assert.Equal(t, "updated", s.Invoices()[1].Description)
}

func TestDeleteWaitsForRemoteConfirmation(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{Invoices: []models.Invoice{{ID: "RT3080"}}, Total: 1}}
	s := NewInvoiceStore(backend, 20)
	require.NoError(t, s.List(context.Background()))

	backend.deleteErr = errors.New("delete rejected")
	require.Error(t, s.Delete(context.Background(), "RT3080"))
	assert.Equal(t, []string{"RT3080"}, ids(s.Invoices()), "local removal must not precede remote success")
	assert.Equal(t, "delete rejected", s.Err())

	backend.deleteErr = nil
	require.NoError(t, s.Delete(context.Background(), "RT3080"))
	assert.Empty(t, s.Invoices())
	assert.Equal(t, []string{"RT3080"}, backend.deleted)
}

func TestMarkPaidReplacesInPlace(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{Invoices: []models.Invoice{{ID: "RT3080", Status: models.StatusPending}}, Total: 1}}
	s := NewInvoiceStore(backend, 20)
	require.NoError(t, s.List(context.Background()))

	backend.paid = models.Invoice{ID: "RT3080", Status: models.StatusPaid}
	inv, err := s.MarkPaid(context.Background(), "RT3080")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, inv.Status)
	assert.Equal(t, models.StatusPaid, s.Invoices()[0].Status)
}

func TestDuplicateReturnsNewEntity(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{Invoices: []models.Invoice{{ID: "RT3080", Description: "Re-branding"}}, Total: 1}}
	s := NewInvoiceStore(backend, 20)
	require.NoError(t, s.List(context.Background()))

	backend.duplicated = models.Invoice{ID: "AA1234", Description: "Re-branding", Status: models.StatusDraft}
	inv, err := s.Duplicate(context.Background(), "RT3080")
	require.NoError(t, err)

	assert.NotEqual(t, "RT3080", inv.ID)
	assert.Equal(t, "Re-branding", inv.Description)
	assert.Equal(t, []string{"AA1234", "RT3080"}, ids(s.Invoices()))
}

func TestToggleFilterResetsOffsetAndRelistsOnce(t *testing.T) {
	backend := &fakeBackend{listPage: models.Page{Total: 0}}
	s := NewInvoiceStore(backend, 20)

	require.NoError(t, s.SetPage(context.Background(), 40))
	require.Len(t, backend.listCalls, 1)
	assert.Equal(t, 40, backend.listCalls[0].offset)

	require.NoError(t, s.ToggleFilter(context.Background(), models.StatusPending))

	require.Len(t, backend.listCalls, 2, "exactly one re-list per toggle")
	assert.Equal(t, 0, backend.listCalls[1].offset, "pagination resets to the first page")
	assert.Equal(t, []models.Status{models.StatusPending}, backend.listCalls[1].statuses)

	// Toggling the same status off clears the filter set.
	require.NoError(t, s.ToggleFilter(context.Background(), models.StatusPending))
	require.Len(t, backend.listCalls, 3)
	assert.Empty(t, backend.listCalls[2].statuses)
}
