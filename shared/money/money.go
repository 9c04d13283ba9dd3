// Package money carries monetary values as integer minor units (two decimal places).
// It reads and writes NUMERIC columns and serialises to JSON as a decimal string.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minorPerMajor = 100
	scale         = 2
)

// maxUnits keeps units*minorPerMajor plus a full fraction inside int64.
const maxUnits = (math.MaxInt64 - (minorPerMajor - 1)) / minorPerMajor

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a value in minor units: Amount(250000) is 2500.00.
type Amount int64

// FromMajor builds an Amount from whole units.
func FromMajor(units int64) Amount { return Amount(units * minorPerMajor) }

// Parse reads a decimal string such as "2500", "2500.5" or "2500.50".
func Parse(value string) (Amount, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if value[0] == '-' || value[0] == '+' {
		negative = value[0] == '-'
		value = value[1:]
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if !digits(whole) || (hasFrac && (!digits(frac) || len(frac) > scale)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxUnits {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, value)
	}

	var cents int64
	if hasFrac {
		frac += strings.Repeat("0", scale-len(frac))

		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
		}
	}

	minor := units*minorPerMajor + cents
	if negative {
		minor = -minor
	}

	return Amount(minor), nil
}

// digits reports whether s is a non-empty run of ASCII digits.
func digits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Mul multiplies the amount by a quantity, e.g. a nightly rate by a number of nights.
func (a Amount) Mul(qty int64) Amount { return Amount(int64(a) * qty) }

func (a Amount) Add(other Amount) Amount { return a + other }

func (a Amount) IsPositive() bool { return a > 0 }

func (a Amount) IsZero() bool { return a == 0 }

// String renders the amount with exactly two decimals.
func (a Amount) String() string {
	minor := int64(a)
	sign := ""

	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	return fmt.Sprintf("%s%d.%02d", sign, minor/minorPerMajor, minor%minorPerMajor)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both "2500.00" and 2500.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		*a = 0

		return nil
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// Value implements driver.Valuer so the amount is written to NUMERIC columns as text.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = 0

		return nil
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	case int64:
		*a = FromMajor(v)

		return nil
	case float64:
		*a = Amount(math.Round(v * minorPerMajor))

		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAmount, src)
	}
}

func (a *Amount) scanString(value string) error {
	// aggregates over NUMERIC may carry a wider scale
	if whole, frac, ok := strings.Cut(value, "."); ok && len(frac) > scale {
		value = whole + "." + frac[:scale]
	}

	parsed, err := Parse(value)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}
