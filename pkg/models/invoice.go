package models

// Status is the lifecycle state of an invoice. Exactly one applies at a time.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid" // terminal; no action leads back out of paid
)

// Valid reports whether s is one of the three known states.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPending || s == StatusPaid
}

// PaymentTerms is the number of calendar days until payment is due.
// Only the enumerated values are accepted, in every validation mode.
type PaymentTerms int

const (
	TermsNet1  PaymentTerms = 1
	TermsNet7  PaymentTerms = 7
	TermsNet14 PaymentTerms = 14
	TermsNet30 PaymentTerms = 30
)

// Valid reports whether t is one of the enumerated payment terms.
func (t PaymentTerms) Valid() bool {
	switch t {
	case TermsNet1, TermsNet7, TermsNet14, TermsNet30:
		return true
	}
	return false
}

// Address is a postal address. No format constraints beyond non-empty
// fields under strict validation.
type Address struct {
	Street   string
	City     string
	PostCode string
	Country  string
}

// InvoiceItem is a single line on an invoice.
type InvoiceItem struct {
	Name     string
	Quantity float64
	Price    float64
	Total    float64 // derived: Quantity * Price, never authored
}

// Invoice is the client's canonical invoice representation.
//
// Dates are date-only strings in "YYYY-MM-DD" form; they are parsed only
// where calendar math is required. Subtotal, TaxAmount, Total, PaymentDue
// and IsOverdue are derived fields: they are computed from the raw input
// (locally or by the backend) and never accepted as authored values.
type Invoice struct {
	ID            string // e.g. "RT3080" in local mode, server-issued otherwise
	CreatedAt     string
	PaymentDue    string // derived: CreatedAt + PaymentTerms days
	Description   string
	PaymentTerms  PaymentTerms
	ClientName    string
	ClientEmail   string
	Status        Status
	SenderAddress Address
	ClientAddress Address
	Items         []InvoiceItem
	Subtotal      float64 // derived: sum of item totals
	TaxRate       float64 // percentage, zero when untaxed
	TaxAmount     float64 // derived: round2(Subtotal * TaxRate / 100)
	Total         float64 // derived: Subtotal + TaxAmount
	IsOverdue     bool    // derived: PaymentDue < today && Status != paid
}

// FormValues is the raw, user-authored shape of an invoice. It deliberately
// excludes every derived and server-owned field; those are recomputed after
// submission.
type FormValues struct {
	CreatedAt     string
	Description   string
	PaymentTerms  PaymentTerms
	ClientName    string
	ClientEmail   string
	SenderAddress Address
	ClientAddress Address
	Items         []ItemValues
	TaxRate       float64
}

// ItemValues is the raw input for a single invoice line.
type ItemValues struct {
	Name     string
	Quantity float64
	Price    float64
}

// Page is one window of the invoice collection as known to the backend,
// along with the total count behind the window.
type Page struct {
	Invoices []Invoice
	Total    int
	Limit    int
	Offset   int
}

// User is the authenticated account's profile.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt string
}
