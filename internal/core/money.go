// Package core defines the ledger's domain types: calendar dates, fixed-point
// monetary amounts, and the immutable daily entry built from them.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point monetary amount with two decimal digits, held as
// cents. Entry fields are always non-negative; the type itself permits
// negative values so arithmetic intermediates stay representable.
type Money struct {
	Cents int64
}

// String formats the amount as a plain decimal with exactly two fraction
// digits, e.g. "12.34". This is also the wire and column representation.
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON emits the amount as an unquoted JSON number with two fraction
// digits. Marshalling through a float64 would risk drift on large values.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number with at most two fraction digits,
// parsed textually so no float touches the value. The lenient boundary
// parsing lives in the ingest package; this strict form is for
// round-tripping stored entries.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (frac == "" || len(frac) > 2) {
		return fmt.Errorf("invalid money value %s", b)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return fmt.Errorf("invalid money value %s", b)
	}
	hundredths, err := strconv.ParseUint(frac, 10, 63)
	if err != nil {
		return fmt.Errorf("invalid money value %s", b)
	}

	cents := int64(units)*100 + int64(hundredths)
	if neg {
		cents = -cents
	}
	m.Cents = cents
	return nil
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
