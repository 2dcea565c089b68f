package checkout

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseAmount extracts a numeric amount from a freeform price display
// string. Currency glyphs, grouping separators and any other decoration
// are stripped; whatever remains is parsed as a decimal. Malformed input
// degrades to zero so a bad catalog price can never break the cart.
func ParseAmount(display string) decimal.Decimal {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CurrencyFormatter renders amounts for display with the tenant's
// currency glyph. Formatted output is for humans; it is not required to
// round-trip through ParseAmount.
type CurrencyFormatter struct {
	glyph   string
	printer *message.Printer
}

// NewCurrencyFormatter creates a formatter for the given glyph
func NewCurrencyFormatter(glyph string) *CurrencyFormatter {
	return &CurrencyFormatter{
		glyph:   glyph,
		printer: message.NewPrinter(language.English),
	}
}

// Format renders a grouped amount prefixed with the glyph. Fraction digits
// are kept only when present: 150 renders as "₱150", 120.5 as "₱120.5",
// 1000 as "₱1,000". Amounts beyond float range fall back to a plain
// glyph + digits concatenation instead of failing.
func (f *CurrencyFormatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Float64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return f.glyph + amount.String()
	}
	return f.glyph + f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}
