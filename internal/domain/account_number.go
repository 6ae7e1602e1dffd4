package domain

import (
	"fmt"
	"regexp"
)

var accountNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)

// AccountNumber is a validated 10-digit account identifier.
// No checksum is enforced.
type AccountNumber struct {
	value string
}

// NewAccountNumber validates and wraps s.
func NewAccountNumber(s string) (AccountNumber, error) {
	if !accountNumberRegex.MatchString(s) {
		return AccountNumber{}, fmt.Errorf("%w: got %q", ErrInvalidAccountNumber, s)
	}

	return AccountNumber{value: s}, nil
}

// String returns the digits.
func (a AccountNumber) String() string {
	return a.value
}

// IsZero reports whether a is the absent value.
func (a AccountNumber) IsZero() bool {
	return a.value == ""
}

// Equal compares digits.
func (a AccountNumber) Equal(other AccountNumber) bool {
	return a.value == other.value
}
