package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with thousands separators and at most two
// decimals, dropping a zero fraction: 1400 -> "1,400", 99.5 -> "99.50".
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0)
	out := sign + printer.Sprintf("%d", whole.IntPart())

	frac := rounded.Sub(whole)
	if !frac.IsZero() {
		fixed := frac.StringFixed(2) // "0.xx"
		out += fixed[strings.IndexByte(fixed, '.'):]
	}
	return out
}

// DisplayDateLayout is the day-first layout used on invoices.
const DisplayDateLayout = "02/01/2006"
