package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validInput() RecordInput {
	return RecordInput{
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Factura 1001",
		Movements: []MovementInput{
			{AccountCode: "110000", Debit: amount("100000")},
			{AccountCode: "410000", Credit: amount("100000")},
		},
	}
}

func TestValidateAcceptsBalancedEntry(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("balanced entry rejected: %v", err)
	}
}

func TestValidateRejectsUnbalancedEntry(t *testing.T) {
	in := validInput()
	in.Movements[1].Credit = amount("99999")
	err := in.Validate()
	if !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	var unbalanced *UnbalancedError
	if !errors.As(err, &unbalanced) {
		t.Fatalf("expected *UnbalancedError, got %T", err)
	}
	if !unbalanced.Difference.Equal(amount("1")) {
		t.Fatalf("difference = %s, want 1", unbalanced.Difference)
	}
}

func TestValidateToleratesRoundingDrift(t *testing.T) {
	in := validInput()
	in.Movements[1].Credit = amount("99999.99")
	if err := in.Validate(); err != nil {
		t.Fatalf("drift within tolerance rejected: %v", err)
	}
}

func TestValidateRejectsBothSidesSet(t *testing.T) {
	in := validInput()
	in.Movements[0].Credit = amount("1")
	if err := in.Validate(); !errors.Is(err, ErrMalformedMovement) {
		t.Fatalf("expected ErrMalformedMovement, got %v", err)
	}
}

func TestValidateRejectsNeitherSideSet(t *testing.T) {
	in := validInput()
	in.Movements[0].Debit = decimal.Zero
	if err := in.Validate(); !errors.Is(err, ErrMalformedMovement) {
		t.Fatalf("expected ErrMalformedMovement, got %v", err)
	}
}

func TestValidateRejectsNegativeAmount(t *testing.T) {
	in := validInput()
	in.Movements[0].Debit = amount("-100000")
	if err := in.Validate(); !errors.Is(err, ErrMalformedMovement) {
		t.Fatalf("expected ErrMalformedMovement, got %v", err)
	}
}

func TestValidateRequiresTwoMovements(t *testing.T) {
	in := validInput()
	in.Movements = in.Movements[:1]
	if err := in.Validate(); !errors.Is(err, ErrTooFewMovements) {
		t.Fatalf("expected ErrTooFewMovements, got %v", err)
	}
}

func TestValidateRejectsUnknownReferenceType(t *testing.T) {
	in := validInput()
	in.Reference = &ReferenceInput{Type: "memo", ID: 7}
	if err := in.Validate(); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}
