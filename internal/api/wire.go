package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a float64 that tolerates the backend's habit of serializing
// monetary and computed figures as either JSON numbers or numeric strings.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("numeric string %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Wire shapes: snake_case field names as served by the REST backend.

type wireAddress struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	PostCode string `json:"post_code"`
	Country  string `json:"country"`
}

type wireItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity Number  `json:"quantity"`
	Price    Number  `json:"price"`
	Total    Number  `json:"total"`
}

type wireInvoice struct {
	ID            string      `json:"id"`
	CreatedAt     string      `json:"created_at"`
	PaymentDue    string      `json:"payment_due"`
	Description   string      `json:"description"`
	PaymentTerms  int         `json:"payment_terms"`
	ClientName    string      `json:"client_name"`
	ClientEmail   string      `json:"client_email"`
	Status        string      `json:"status"`
	SenderAddress wireAddress `json:"sender_address"`
	ClientAddress wireAddress `json:"client_address"`
	Items         []wireItem  `json:"items"`
	Subtotal      Number      `json:"subtotal"`
	TaxRate       Number      `json:"tax_rate"`
	TaxAmount     Number      `json:"tax_amount"`
	Total         Number      `json:"total"`
	IsOverdue     bool        `json:"is_overdue"`
}

type wireInvoiceList struct {
	Items  []wireInvoice `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// Outbound bodies. Derived and server-owned fields (id, totals, due date,
// overdue flag) are deliberately absent: the backend recomputes them.

type itemBody struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

type invoiceBody struct {
	CreatedAt     string      `json:"created_at"`
	Description   string      `json:"description"`
	PaymentTerms  int         `json:"payment_terms"`
	ClientName    string      `json:"client_name"`
	ClientEmail   string      `json:"client_email"`
	SenderAddress wireAddress `json:"sender_address"`
	ClientAddress wireAddress `json:"client_address"`
	Items         []itemBody  `json:"items"`
	TaxRate       float64     `json:"tax_rate"`
	// SubmitMode distinguishes "save as draft" from "save & send".
	// Present only on creation.
	SubmitMode string `json:"submit_mode,omitempty"`
}

type wireToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type wireUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type errorBody struct {
	Detail string `json:"detail"`
}
