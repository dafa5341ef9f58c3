package localdata

import (
	"math/rand"
)

const idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewInvoiceID generates an id in the client-side format: two uppercase
// letters followed by four digits, e.g. "RT3080".
func NewInvoiceID() string {
	id := make([]byte, 6)
	id[0] = idLetters[rand.Intn(len(idLetters))]
	id[1] = idLetters[rand.Intn(len(idLetters))]
	for i := 2; i < 6; i++ {
		id[i] = byte('0' + rand.Intn(10))
	}
	return string(id)
}
