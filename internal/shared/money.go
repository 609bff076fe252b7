package shared

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits stored for monetary columns.
const MoneyScale = 2

// Amount is a fixed-point monetary value. It travels over JSON as a string
// with exactly two fraction digits and is stored as numeric(10,2).
type Amount struct {
	decimal.Decimal
}

// Amounts outside these bounds are rejected on decode. Arithmetic on a
// decimal with a huge exponent allocates a 10^exp integer.
const (
	maxAmountLength   = 32
	maxAmountExponent = 16
)

// ZeroAmount is 0.00.
var ZeroAmount = Amount{decimal.Zero}

// NewAmount parses a decimal string such as "150.00".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d}, nil
}

// MustAmount is NewAmount for constants and tests.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{a.Decimal.Add(b.Decimal)}
}

// Equal compares numerically, so 100 equals 100.00.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// String renders the amount with MoneyScale fraction digits.
func (a Amount) String() string {
	return a.Decimal.StringFixed(MoneyScale)
}

// MarshalJSON encodes the amount as a quoted fixed-point string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both "12.50" and 12.50.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	if len(s) > maxAmountLength {
		return fmt.Errorf("invalid amount: longer than %d characters", maxAmountLength)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	if !(Amount{d}).Bounded() {
		return fmt.Errorf("invalid amount %q", s)
	}
	a.Decimal = d
	return nil
}

// Bounded reports whether the exponent is small enough for rounding and
// formatting to stay cheap.
func (a Amount) Bounded() bool {
	exp := a.Decimal.Exponent()
	return exp <= maxAmountExponent && exp >= -maxAmountExponent
}

// Scan implements sql.Scanner for numeric columns.
func (a *Amount) Scan(value any) error {
	return a.Decimal.Scan(value)
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}
