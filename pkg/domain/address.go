package domain

import (
	"encoding/hex"
	"strings"

	dErrors "ticketd/pkg/domain-errors"
)

// AddressLength is the size of a holder identity in bytes.
const AddressLength = 20

// Address is the opaque fixed-length identity of a balance holder. The ledger
// never interprets its contents; it is only compared and used as a map key.
//
// Usage: construct via ParseAddress at trust boundaries to enforce the format;
// direct conversion bypasses validation.
type Address [AddressLength]byte

// ParseAddress constructs an Address from external input. Accepts a
// 0x-prefixed, 40-character hex string, case-insensitive.
//
// Errors: returns CodeInvalidInput when the value is empty, has the wrong
// length, or contains non-hex characters.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	body, ok := strings.CutPrefix(s, "0x")
	if !ok {
		body, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must start with 0x")
	}
	if len(body) != AddressLength*2 {
		return Address{}, dErrors.Newf(dErrors.CodeInvalidInput, "address must be %d hex characters", AddressLength*2)
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address contains non-hex characters")
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// String returns the canonical lowercase 0x-prefixed hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero value, which is never a
// valid holder identity.
func (a Address) IsZero() bool {
	return a == Address{}
}
