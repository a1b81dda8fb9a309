package fields

import (
	"fmt"
	"strconv"
	"strings"
)

// CleanAmount strips the currency symbol, grouping commas and surrounding
// whitespace from a captured amount. An empty result becomes "0".
func CleanAmount(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	return s
}

// AmountError reports a captured amount that could not be converted to an integer.
type AmountError struct {
	Field string
	Raw   string
	Err   error
}

func (e *AmountError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse amount %q: %v", e.Raw, e.Err)
	}
	return fmt.Sprintf("parse %s amount %q: %v", e.Field, e.Raw, e.Err)
}

func (e *AmountError) Unwrap() error { return e.Err }

// ParseAmount cleans s and converts it to whole currency units.
func ParseAmount(s string) (int64, error) {
	clean := CleanAmount(s)
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, &AmountError{Raw: s, Err: err}
	}
	if n < 0 {
		return 0, &AmountError{Raw: s, Err: fmt.Errorf("negative amount")}
	}
	return n, nil
}
