package quotations

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// taxRate is the IVA applied on top of the marked-up net total.
var taxRate = decimal.RequireFromString("0.19")

// ErrInvalidLineItem indicates a non-positive quantity or unit price. Invalid
// amounts are rejected, never clamped.
var ErrInvalidLineItem = errors.New("quotations: invalid line item")

// LineItemInput is one materials line: quantity times unit price.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Calculation is the monetary derivation of a quotation.
type Calculation struct {
	MaterialsTotal decimal.Decimal `json:"materials_total"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	MarginAmount   decimal.Decimal `json:"margin_amount"`
	NetTotal       decimal.Decimal `json:"net_total"`
	Tax            decimal.Decimal `json:"tax"`
	GrandTotal     decimal.Decimal `json:"total"`
}

// ValidateItems guards the calculator boundary: the pure computation below
// assumes validated input.
func ValidateItems(items []LineItemInput, laborCost, marginPercent decimal.Decimal) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item required", ErrInvalidLineItem)
	}
	for idx, item := range items {
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidLineItem, idx)
		}
		if !item.UnitPrice.IsPositive() {
			return fmt.Errorf("%w: item %d unit price must be positive", ErrInvalidLineItem, idx)
		}
	}
	if laborCost.IsNegative() {
		return fmt.Errorf("%w: labor cost cannot be negative", ErrInvalidLineItem)
	}
	if marginPercent.IsNegative() {
		return fmt.Errorf("%w: margin percentage cannot be negative", ErrInvalidLineItem)
	}
	return nil
}

// CalculateTotals derives the quotation amounts. A margin of zero is a valid
// no-markup quotation.
func CalculateTotals(items []LineItemInput, laborCost, marginPercent decimal.Decimal) Calculation {
	materials := decimal.Zero
	for _, item := range items {
		materials = materials.Add(item.Quantity.Mul(item.UnitPrice))
	}
	subtotal := materials.Add(laborCost)
	margin := subtotal.Mul(marginPercent).Div(decimal.NewFromInt(100))
	net := subtotal.Add(margin)
	tax := net.Mul(taxRate)
	return Calculation{
		MaterialsTotal: materials,
		Subtotal:       subtotal,
		MarginAmount:   margin,
		NetTotal:       net,
		Tax:            tax,
		GrandTotal:     net.Add(tax),
	}
}
