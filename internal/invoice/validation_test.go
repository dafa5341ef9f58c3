package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicectl/pkg/models"
)

func completeValues() models.FormValues {
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
		Items: []models.ItemValues{
			{Name: "Banner Design", Quantity: 1, Price: 156},
		},
	}
}

func TestValidateInvoiceStrictAcceptsComplete(t *testing.T) {
	v := ValidateInvoice(completeValues(), ModePending)
	assert.True(t, v.Empty(), "violations: %v", v)
}

func TestValidateInvoiceStrictRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.FormValues)
		wantField string
		wantMsg   string
	}{
		{
			"empty client email",
			func(f *models.FormValues) { f.ClientEmail = "" },
			"clientEmail", "can't be empty",
		},
		{
			"malformed client email",
			func(f *models.FormValues) { f.ClientEmail = "not-an-email" },
			"clientEmail", "must be a valid email",
		},
		{
			"empty created at",
			func(f *models.FormValues) { f.CreatedAt = "" },
			"createdAt", "can't be empty",
		},
		{
			"empty description",
			func(f *models.FormValues) { f.Description = "" },
			"description", "can't be empty",
		},
		{
			"empty client name",
			func(f *models.FormValues) { f.ClientName = "" },
			"clientName", "can't be empty",
		},
		{
			"empty item list",
			func(f *models.FormValues) { f.Items = nil },
			"items", "an item must be added",
		},
		{
			"zero quantity",
			func(f *models.FormValues) { f.Items[0].Quantity = 0 },
			"items[0].quantity", "must be at least 1",
		},
		{
			"negative price",
			func(f *models.FormValues) { f.Items[0].Price = -5 },
			"items[0].price", "can't be negative",
		},
		{
			"unnamed item",
			func(f *models.FormValues) { f.Items[0].Name = "  " },
			"items[0].name", "can't be empty",
		},
		{
			"empty sender street",
			func(f *models.FormValues) { f.SenderAddress.Street = "" },
			"senderAddress.street", "can't be empty",
		},
		{
			"empty client post code",
			func(f *models.FormValues) { f.ClientAddress.PostCode = "" },
			"clientAddress.postCode", "can't be empty",
		},
		{
			"empty client country",
			func(f *models.FormValues) { f.ClientAddress.Country = "" },
			"clientAddress.country", "can't be empty",
		},
		{
			"invalid payment terms",
			func(f *models.FormValues) { f.PaymentTerms = 15 },
			"paymentTerms", "must be 1, 7, 14 or 30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := completeValues()
			tt.mutate(&values)
			v := ValidateInvoice(values, ModePending)
			assert.Equal(t, tt.wantMsg, v[tt.wantField])
		})
	}
}

func TestValidateInvoiceDraftAcceptsEmptySkeleton(t *testing.T) {
	// A draft may be entirely blank; only the payment terms stay constrained.
	v := ValidateInvoice(models.FormValues{PaymentTerms: models.TermsNet7}, ModeDraft)
	assert.True(t, v.Empty(), "violations: %v", v)

	v = ValidateInvoice(models.FormValues{}, ModeDraft)
	assert.Equal(t, Violations{"paymentTerms": "must be 1, 7, 14 or 30"}, v)
}

func TestValidateInvoiceDraftIgnoresIncompleteItems(t *testing.T) {
	values := models.FormValues{
		PaymentTerms: models.TermsNet1,
		Items:        []models.ItemValues{{Name: "", Quantity: 0, Price: 0}},
	}
	assert.True(t, ValidateInvoice(values, ModeDraft).Empty())
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin("user@mail.com", "supersecret").Empty())

	v := ValidateLogin("", "short")
	assert.Equal(t, "can't be empty", v["email"])
	assert.Equal(t, "must be at least 8 characters", v["password"])

	v = ValidateLogin("nope", "longenough")
	assert.Equal(t, "must be a valid email", v["email"])
}

func TestValidateRegister(t *testing.T) {
	assert.True(t, ValidateRegister("Ada", "ada@mail.com", "password1", "password1").Empty())

	v := ValidateRegister("", "ada@mail.com", "password1", "password2")
	assert.Equal(t, "can't be empty", v["name"])

	// The mismatch is reported on confirmPassword, never on password.
	assert.Equal(t, "passwords do not match", v["confirmPassword"])
	_, ok := v["password"]
	assert.False(t, ok)

	v = ValidateRegister("Ada", "ada@mail.com", "password1", "")
	assert.Equal(t, "can't be empty", v["confirmPassword"])
}
