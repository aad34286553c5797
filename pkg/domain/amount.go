package domain

import (
	"strconv"

	"github.com/shopspring/decimal"

	dErrors "ticketd/pkg/domain-errors"
)

// AmountDecimals is the fixed-point precision of all ledger quantities, both
// ticket units and native currency. It matches the standard 18-decimal token
// denomination.
const AmountDecimals = 18

// TicketID identifies a ticket record. IDs are assigned sequentially starting
// at 1 and never reused; 0 is never a valid id.
type TicketID uint64

// ParseTicketID constructs a TicketID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, non-numeric, or
// zero.
func ParseTicketID(s string) (TicketID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "ticket id cannot be empty")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "ticket id must be a positive integer")
	}
	if n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "ticket id cannot be zero")
	}
	return TicketID(n), nil
}

// String returns the decimal string form of the id.
func (id TicketID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseAmount constructs a non-negative fixed-point amount from external
// input. Amounts carry at most AmountDecimals fractional digits.
//
// Errors: returns CodeInvalidInput when the value is empty, unparseable,
// negative, or finer-grained than the ledger's precision.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, dErrors.New(dErrors.CodeInvalidInput, "amount cannot be empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, dErrors.New(dErrors.CodeInvalidInput, "amount must be a decimal number")
	}
	if d.IsNegative() {
		return decimal.Zero, dErrors.New(dErrors.CodeInvalidInput, "amount cannot be negative")
	}
	if d.Exponent() < -AmountDecimals {
		return decimal.Zero, dErrors.Newf(dErrors.CodeInvalidInput, "amount cannot have more than %d decimal places", AmountDecimals)
	}
	return d, nil
}
