// Package localdata is the sqlite-backed invoice backend used when the
// client runs without a remote server (INVOICE_BACKEND=local). It mirrors
// the REST backend's semantics: ids are generated here, derived fields are
// recomputed on every write, and saving an edit to a draft promotes it to
// pending.
package localdata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

type addressRecord struct {
	Street   string
	City     string
	PostCode string
	Country  string
}

type itemRecord struct {
	ID        uint   `gorm:"primaryKey"`
	InvoiceID string `gorm:"index;not null"`
	Position  int    `gorm:"not null"` // display order within the invoice
	Name      string
	Quantity  float64
	Price     float64
	Total     float64
}

type invoiceRecord struct {
	ID            string `gorm:"primaryKey"`
	CreatedAt     string
	PaymentDue    string
	Description   string
	PaymentTerms  int
	ClientName    string
	ClientEmail   string
	Status        string        `gorm:"index;not null"`
	SenderAddress addressRecord `gorm:"embedded;embeddedPrefix:sender_"`
	ClientAddress addressRecord `gorm:"embedded;embeddedPrefix:client_"`
	Items         []itemRecord  `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal      float64
	TaxRate       float64
	TaxAmount     float64
	Total         float64
	InsertedAt    time.Time `gorm:"autoCreateTime;index"` // newest first in listings
}

// Store is a sqlite implementation of the invoice backend.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string
}

// Open connects to (or creates) the database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&invoiceRecord{}, &itemRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{
		db:    db,
		log:   logger.WithComponent("localdata"),
		now:   time.Now,
		newID: NewInvoiceID,
	}, nil
}

// ListInvoices returns a page of invoices, newest first, filtered by
// status when the filter set is non-empty.
func (s *Store) ListInvoices(ctx context.Context, statuses []models.Status, limit, offset int) (models.Page, error) {
	query := s.db.WithContext(ctx).Model(&invoiceRecord{})
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, st := range statuses {
			values[i] = string(st)
		}
		query = query.Where("status IN ?", values)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return models.Page{}, fmt.Errorf("counting invoices: %w", err)
	}

	var records []invoiceRecord
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("inserted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return models.Page{}, fmt.Errorf("listing invoices: %w", err)
	}

	invoices := make([]models.Invoice, len(records))
	for i, rec := range records {
		invoices[i] = s.toModel(rec)
	}
	return models.Page{Invoices: invoices, Total: int(total), Limit: limit, Offset: offset}, nil
}

// GetInvoice fetches a single invoice by id.
func (s *Store) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	return s.toModel(rec), nil
}

// CreateInvoice derives all computed fields from the raw values, assigns a
// fresh id, and stores the invoice with the status implied by the
// submission mode.
func (s *Store) CreateInvoice(ctx context.Context, values models.FormValues, mode models.Status) (models.Invoice, error) {
	derived := invoice.Derive(values, mode, s.now())

	id, err := s.uniqueID(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	derived.ID = id

	rec := s.toRecord(derived)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Invoice{}, fmt.Errorf("storing invoice: %w", err)
	}
	s.log.Info().Str("id", id).Str("status", string(mode)).Msg("Invoice created")
	return s.toModel(rec), nil
}

// UpdateInvoice replaces the authored fields and recomputes everything
// derived. Saving an edit to a draft promotes it to pending; paid stays
// paid.
func (s *Store) UpdateInvoice(ctx context.Context, id string, values models.FormValues) (models.Invoice, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}

	status := models.Status(existing.Status)
	if status == models.StatusDraft {
		status = models.StatusPending
	}

	derived := invoice.Derive(values, status, s.now())
	derived.ID = id

	rec := s.toRecord(derived)
	rec.InsertedAt = existing.InsertedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return models.Invoice{}, fmt.Errorf("updating invoice: %w", err)
	}
	return s.toModel(rec), nil
}

// DeleteInvoice removes the invoice and its items permanently.
func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoiceRecord{ID: id}).Error
	})
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}
	return nil
}

// MarkPaid transitions a pending invoice to paid. Any other starting
// state is rejected: paid is terminal and drafts have never been sent.
func (s *Store) MarkPaid(ctx context.Context, id string) (models.Invoice, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if models.Status(rec.Status) != models.StatusPending {
		return models.Invoice{}, fmt.Errorf("%w: %s is %s", invoice.ErrInvalidStatusTransition, id, rec.Status)
	}

	rec.Status = string(models.StatusPaid)
	if err := s.db.WithContext(ctx).Model(&invoiceRecord{ID: id}).Update("status", rec.Status).Error; err != nil {
		return models.Invoice{}, fmt.Errorf("marking invoice paid: %w", err)
	}
	return s.toModel(rec), nil
}

// DuplicateInvoice clones an invoice under a fresh id. The copy restarts
// its lifecycle as a draft.
func (s *Store) DuplicateInvoice(ctx context.Context, id string) (models.Invoice, error) {
	source, err := s.load(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}

	newID, err := s.uniqueID(ctx)
	if err != nil {
		return models.Invoice{}, err
	}

	clone := source
	clone.ID = newID
	clone.Status = string(models.StatusDraft)
	clone.InsertedAt = time.Time{} // let autoCreateTime stamp it
	clone.Items = make([]itemRecord, len(source.Items))
	for i, it := range source.Items {
		it.ID = 0
		it.InvoiceID = newID
		clone.Items[i] = it
	}

	if err := s.db.WithContext(ctx).Create(&clone).Error; err != nil {
		return models.Invoice{}, fmt.Errorf("storing duplicate: %w", err)
	}
	s.log.Info().Str("source", id).Str("id", newID).Msg("Invoice duplicated")
	return s.toModel(clone), nil
}

// load fetches a record with its items, mapping gorm's not-found onto the
// domain error.
func (s *Store) load(ctx context.Context, id string) (invoiceRecord, error) {
	var rec invoiceRecord
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invoiceRecord{}, invoice.ErrNotFound
	}
	if err != nil {
		return invoiceRecord{}, fmt.Errorf("loading invoice: %w", err)
	}
	return rec, nil
}

// uniqueID draws generated ids until one is free. Collisions are rare (26²
// × 10⁴ combinations) but cheap to rule out.
func (s *Store) uniqueID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id := s.newID()
		var count int64
		if err := s.db.WithContext(ctx).Model(&invoiceRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("checking id uniqueness: %w", err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique invoice id")
}

func (s *Store) toModel(rec invoiceRecord) models.Invoice {
	items := make([]models.InvoiceItem, len(rec.Items))
	for i, it := range rec.Items {
		items[i] = models.InvoiceItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price, Total: it.Total}
	}
	status := models.Status(rec.Status)
	return models.Invoice{
		ID:            rec.ID,
		CreatedAt:     rec.CreatedAt,
		PaymentDue:    rec.PaymentDue,
		Description:   rec.Description,
		PaymentTerms:  models.PaymentTerms(rec.PaymentTerms),
		ClientName:    rec.ClientName,
		ClientEmail:   rec.ClientEmail,
		Status:        status,
		SenderAddress: models.Address(rec.SenderAddress),
		ClientAddress: models.Address(rec.ClientAddress),
		Items:         items,
		Subtotal:      rec.Subtotal,
		TaxRate:       rec.TaxRate,
		TaxAmount:     rec.TaxAmount,
		Total:         rec.Total,
		// Overdue depends on the reading day, so it is derived here
		// rather than stored.
		IsOverdue: invoice.Overdue(rec.PaymentDue, status, s.now()),
	}
}

func (s *Store) toRecord(inv models.Invoice) invoiceRecord {
	items := make([]itemRecord, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = itemRecord{
			InvoiceID: inv.ID,
			Position:  i,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
		}
	}
	return invoiceRecord{
		ID:            inv.ID,
		CreatedAt:     inv.CreatedAt,
		PaymentDue:    inv.PaymentDue,
		Description:   inv.Description,
		PaymentTerms:  int(inv.PaymentTerms),
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		Status:        string(inv.Status),
		SenderAddress: addressRecord(inv.SenderAddress),
		ClientAddress: addressRecord(inv.ClientAddress),
		Items:         items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
	}
}
