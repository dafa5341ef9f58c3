// Package format renders raw invoice values as display strings.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dateLayout = "2006-01-02"

var printer = message.NewPrinter(language.BritishEnglish)

// Date renders an ISO date-only string as "25 Jan 2024". Unparsable input
// is returned unchanged so a half-filled draft still displays something.
func Date(iso string) string {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("2 Jan 2006")
}

// Currency renders an amount as pounds with grouped thousands and exactly
// two decimal places, e.g. 1800.9 -> "£1,800.90".
func Currency(amount float64) string {
	return printer.Sprintf("£%v", number.Decimal(amount, number.Scale(2)))
}
