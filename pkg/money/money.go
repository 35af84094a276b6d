package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// USD is the only currency the concierge dashboard deals in today.
const USD = "USD"

// Money is a monetary amount in integer minor units (cents for USD).
// Display formatting happens only at the boundary via Format.
type Money struct {
	Units    int64  `json:"minor_units"`
	Currency string `json:"currency"`
}

// New creates a Money from minor units.
func New(units int64, currency string) Money {
	return Money{Units: units, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Currency: currency}
}

// Parse converts a user-entered or legacy display string into Money.
// It tolerates a leading currency symbol, thousands separators, and
// surrounding whitespace: "$1,200", "1,200.50", " 45000 ".
// Sub-cent precision is rejected rather than silently rounded.
func Parse(s, currency string) (Money, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return Money{}, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has sub-cent precision", s)
	}

	return Money{Units: shifted.IntPart(), Currency: currency}, nil
}

// FromFloat converts a floating-point major-unit amount into Money,
// rounding to the nearest cent. Used when migrating legacy snapshots that
// stored balances as raw numbers.
func FromFloat(f float64, currency string) Money {
	units := decimal.NewFromFloat(f).Shift(2).Round(0).IntPart()
	return Money{Units: units, Currency: currency}
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, o.Currency)
	}
	return Money{Units: m.Units + o.Units, Currency: m.Currency}, nil
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Units > 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Units == 0
}

// Format renders the amount in dashboard style: "$45,000" for whole
// amounts, "$1,200.50" otherwise. Non-USD currencies use the code as prefix.
func (m Money) Format() string {
	abs := m.Units
	neg := abs < 0
	if neg {
		abs = -abs
	}

	whole := groupThousands(strconv.FormatInt(abs/100, 10))
	cents := abs % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if m.Currency == USD || m.Currency == "" {
		b.WriteByte('$')
	} else {
		b.WriteString(m.Currency)
		b.WriteByte(' ')
	}
	b.WriteString(whole)
	if cents != 0 {
		fmt.Fprintf(&b, ".%02d", cents)
	}
	return b.String()
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
