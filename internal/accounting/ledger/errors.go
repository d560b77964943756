package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum accepted difference between the debit and
// credit sides of an entry.
var BalanceTolerance = decimal.RequireFromString("0.01")

var (
	// ErrUnbalanced indicates the debit and credit sides differ beyond tolerance.
	ErrUnbalanced = errors.New("ledger: entry does not balance")
	// ErrMalformedMovement indicates a line with both or neither of debit/credit,
	// or a non-positive amount.
	ErrMalformedMovement = errors.New("ledger: malformed movement")
	// ErrTooFewMovements indicates less than two lines.
	ErrTooFewMovements = errors.New("ledger: entry requires at least two movements")
	// ErrEntryNotFound indicates a missing entry.
	ErrEntryNotFound = errors.New("ledger: entry not found")
	// ErrDuplicateReference indicates the idempotency key was already used.
	ErrDuplicateReference = errors.New("ledger: entry already recorded for key")
	// ErrInvalidReference indicates an unknown reference type or missing id.
	ErrInvalidReference = errors.New("ledger: invalid reference")
)

// UnbalancedError carries the computed debit-minus-credit difference so callers
// can report what is off, not just that something is.
type UnbalancedError struct {
	Difference decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("ledger: entry does not balance (difference %s)", e.Difference.StringFixed(2))
}

// Unwrap lets errors.Is match ErrUnbalanced.
func (e *UnbalancedError) Unwrap() error {
	return ErrUnbalanced
}
