package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

// MovementInput describes one line of a posting request in the wire shape:
// exactly one of Debit or Credit must carry a positive amount.
type MovementInput struct {
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// ReferenceInput links an entry to the business document that produced it.
type ReferenceInput struct {
	Type ReferenceType `json:"type"`
	ID   int64         `json:"id"`
}

// RecordInput groups fields required to record a ledger entry.
type RecordInput struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Reference      *ReferenceInput `json:"reference,omitempty"`
	IdempotencyKey *uuid.UUID      `json:"idempotency_key,omitempty"`
	Movements      []MovementInput `json:"movements"`
	ActorID        int64           `json:"-"`
}

// Validate enforces the double-entry invariant before anything touches storage.
func (in RecordInput) Validate() error {
	if in.Date.IsZero() {
		return errors.New("ledger: date required")
	}
	if in.Description == "" {
		return errors.New("ledger: description required")
	}
	if len(in.Movements) < 2 {
		return ErrTooFewMovements
	}
	if in.Reference != nil {
		if !in.Reference.Type.Valid() {
			return fmt.Errorf("%w: unknown type %q", ErrInvalidReference, in.Reference.Type)
		}
		if in.Reference.ID <= 0 {
			return fmt.Errorf("%w: document id required", ErrInvalidReference)
		}
	}
	debit := decimal.Zero
	credit := decimal.Zero
	for idx, line := range in.Movements {
		if line.AccountCode == "" {
			return fmt.Errorf("%w: line %d missing account", ErrMalformedMovement, idx)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d negative amount", ErrMalformedMovement, idx)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit && hasCredit {
			return fmt.Errorf("%w: line %d cannot be both debit and credit", ErrMalformedMovement, idx)
		}
		if !hasDebit && !hasCredit {
			return fmt.Errorf("%w: line %d has no amount", ErrMalformedMovement, idx)
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	if diff := debit.Sub(credit); diff.Abs().GreaterThan(BalanceTolerance) {
		return &UnbalancedError{Difference: diff}
	}
	return nil
}

// movements converts validated input lines into tagged Movement values.
func (in RecordInput) movements() []Movement {
	out := make([]Movement, 0, len(in.Movements))
	for _, line := range in.Movements {
		m := Movement{AccountCode: line.AccountCode}
		if line.Debit.IsPositive() {
			m.Side = coa.SideDebit
			m.Amount = line.Debit
		} else {
			m.Side = coa.SideCredit
			m.Amount = line.Credit
		}
		out = append(out, m)
	}
	return out
}

// ReverseInput wraps parameters for posting an offsetting entry.
type ReverseInput struct {
	EntryID     int64  `json:"-"`
	Description string `json:"description"`
	ActorID     int64  `json:"-"`
}
