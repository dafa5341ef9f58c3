package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoicectl/internal/invoice"
	"invoicectl/pkg/models"
)

// formFile is the on-disk shape of invoice form values. Field names match
// the web client's form payload so the same JSON works in both places.
type formFile struct {
	CreatedAt     string          `json:"createdAt"`
	Description   string          `json:"description"`
	PaymentTerms  int             `json:"paymentTerms"`
	ClientName    string          `json:"clientName"`
	ClientEmail   string          `json:"clientEmail"`
	SenderAddress formFileAddress `json:"senderAddress"`
	ClientAddress formFileAddress `json:"clientAddress"`
	Items         []formFileItem  `json:"items"`
	TaxRate       float64         `json:"taxRate"`
}

type formFileAddress struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`
}

type formFileItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// readFormValues loads and decodes a form-values JSON file.
func readFormValues(path string) (models.FormValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FormValues{}, fmt.Errorf("reading form file: %w", err)
	}

	var f formFile
	if err := json.Unmarshal(data, &f); err != nil {
		return models.FormValues{}, fmt.Errorf("parsing form file %s: %w", path, err)
	}

	values := models.FormValues{
		CreatedAt:     f.CreatedAt,
		Description:   f.Description,
		PaymentTerms:  models.PaymentTerms(f.PaymentTerms),
		ClientName:    f.ClientName,
		ClientEmail:   f.ClientEmail,
		SenderAddress: toAddress(f.SenderAddress),
		ClientAddress: toAddress(f.ClientAddress),
		TaxRate:       f.TaxRate,
	}
	for _, item := range f.Items {
		values.Items = append(values.Items, models.ItemValues{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return values, nil
}

func toAddress(a formFileAddress) models.Address {
	return models.Address{Street: a.Street, City: a.City, PostCode: a.PostCode, Country: a.Country}
}

// reportValidation prints field violations and returns true when err was a
// validation failure. Fields come out in sorted order so output is stable.
func reportValidation(err error) bool {
	vErr, ok := invoice.AsValidationFailed(err)
	if !ok {
		return false
	}
	fmt.Fprintln(os.Stderr, "Validation failed:")
	for _, field := range vErr.Fields() {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, vErr.Violations[field])
	}
	return true
}

// commandContext builds a context that expires after the given timeout and
// cancels on SIGINT/SIGTERM.
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, timeoutCancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		timeoutCancel()
		cancel()
	}
}

// friendlyError maps well-known failures onto friendlier terminal output.
// It returns the original error when nothing special applies.
func friendlyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, invoice.ErrNotFound) {
		return errors.New("invoice not found")
	}
	return err
}
