package invoice

import (
	"fmt"
	"net/mail"
	"strings"

	"invoicectl/pkg/models"
)

// Mode selects the validation strictness tier.
type Mode int

const (
	// ModeDraft is the lenient tier: a draft may hold otherwise-invalid
	// data (empty text fields, zero items). Only payment terms are checked.
	ModeDraft Mode = iota

	// ModePending is the strict tier used for "save & send" and edits:
	// every field must be complete and well-formed.
	ModePending
)

// Violations maps a field path (e.g. "clientAddress.street",
// "items[0].quantity") to a human-readable message. The messages are the
// authoritative user-facing validation text; callers display them verbatim.
type Violations map[string]string

// Empty reports whether the candidate passed validation.
func (v Violations) Empty() bool { return len(v) == 0 }

// Validation message text. Shared across fields on purpose; the field path
// carries the context.
const (
	msgEmpty        = "can't be empty"
	msgEmail        = "must be a valid email"
	msgNoItems      = "an item must be added"
	msgQuantityMin  = "must be at least 1"
	msgNegative     = "can't be negative"
	msgPasswordMin  = "must be at least 8 characters"
	msgPasswordPair = "passwords do not match"
	msgTerms        = "must be 1, 7, 14 or 30"
)

// ValidateInvoice checks raw form values against the rules of the given
// mode. It never fails with an error: the result is a Violations map the
// caller queries, and submission is expected to be blocked while the map is
// non-empty.
func ValidateInvoice(values models.FormValues, mode Mode) Violations {
	v := Violations{}

	// Payment terms are constrained in both modes.
	if !values.PaymentTerms.Valid() {
		v["paymentTerms"] = msgTerms
	}

	if mode == ModeDraft {
		return v
	}

	required(v, "createdAt", values.CreatedAt)
	required(v, "description", values.Description)
	required(v, "clientName", values.ClientName)
	if required(v, "clientEmail", values.ClientEmail) && !validEmail(values.ClientEmail) {
		v["clientEmail"] = msgEmail
	}

	requireAddress(v, "senderAddress", values.SenderAddress)
	requireAddress(v, "clientAddress", values.ClientAddress)

	if len(values.Items) == 0 {
		v["items"] = msgNoItems
	}
	for i, it := range values.Items {
		required(v, fmt.Sprintf("items[%d].name", i), it.Name)
		if it.Quantity < 1 {
			v[fmt.Sprintf("items[%d].quantity", i)] = msgQuantityMin
		}
		if it.Price < 0 {
			v[fmt.Sprintf("items[%d].price", i)] = msgNegative
		}
	}

	return v
}

// ValidateLogin checks login credentials.
func ValidateLogin(email, password string) Violations {
	v := Violations{}
	if required(v, "email", email) && !validEmail(email) {
		v["email"] = msgEmail
	}
	if len(password) < 8 {
		v["password"] = msgPasswordMin
	}
	return v
}

// ValidateRegister checks registration input. A password/confirmation
// mismatch is attached to the confirmPassword field, not to password.
func ValidateRegister(name, email, password, confirmPassword string) Violations {
	v := Violations{}
	required(v, "name", name)
	if required(v, "email", email) && !validEmail(email) {
		v["email"] = msgEmail
	}
	if len(password) < 8 {
		v["password"] = msgPasswordMin
	}
	if required(v, "confirmPassword", confirmPassword) && password != confirmPassword {
		v["confirmPassword"] = msgPasswordPair
	}
	return v
}

// required records msgEmpty for blank values and reports whether the value
// was present.
func required(v Violations, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v[field] = msgEmpty
		return false
	}
	return true
}

func requireAddress(v Violations, prefix string, a models.Address) {
	required(v, prefix+".street", a.Street)
	required(v, prefix+".city", a.City)
	required(v, prefix+".postCode", a.PostCode)
	required(v, prefix+".country", a.Country)
}

// validEmail accepts a bare RFC 5322 address without display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
