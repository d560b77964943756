package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

// ReferenceType names the business document a ledger entry originates from.
type ReferenceType string

const (
	ReferenceInvoice       ReferenceType = "invoice"
	ReferencePurchaseOrder ReferenceType = "purchase_order"
	ReferencePayment       ReferenceType = "payment"
	ReferenceExpense       ReferenceType = "expense"
)

// Valid reports whether the reference type is one of the known document kinds.
func (t ReferenceType) Valid() bool {
	switch t {
	case ReferenceInvoice, ReferencePurchaseOrder, ReferencePayment, ReferenceExpense:
		return true
	}
	return false
}

// Movement is a single debit or credit line against one account. The Side tag
// makes "exactly one of debit/credit" structural; the two-column encoding only
// exists at the storage boundary.
type Movement struct {
	ID          int64           `json:"id"`
	EntryID     int64           `json:"entry_id"`
	AccountCode string          `json:"account_code"`
	Side        coa.Side        `json:"side"`
	Amount      decimal.Decimal `json:"amount"`
}

// Debit returns the amount when the movement is a debit, zero otherwise.
func (m Movement) Debit() decimal.Decimal {
	if m.Side == coa.SideDebit {
		return m.Amount
	}
	return decimal.Zero
}

// Credit returns the amount when the movement is a credit, zero otherwise.
func (m Movement) Credit() decimal.Decimal {
	if m.Side == coa.SideCredit {
		return m.Amount
	}
	return decimal.Zero
}

// Entry is one balanced accounting transaction. Entries are append-only:
// corrections are posted as new offsetting entries, never edited in place.
type Entry struct {
	ID             int64          `json:"id"`
	Date           time.Time      `json:"date"`
	Description    string         `json:"description"`
	ReferenceType  *ReferenceType `json:"reference_type,omitempty"`
	ReferenceID    *int64         `json:"reference_id,omitempty"`
	IdempotencyKey *uuid.UUID     `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	Movements      []Movement     `json:"movements,omitempty"`
}

// TotalDebit sums the debit side of the entry.
func (e Entry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, m := range e.Movements {
		total = total.Add(m.Debit())
	}
	return total
}

// TotalCredit sums the credit side of the entry.
func (e Entry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, m := range e.Movements {
		total = total.Add(m.Credit())
	}
	return total
}
