package payroll

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Statutory rates. The hourly basis is a 30-day month of 8-hour shifts.
var (
	overtimeFactor = decimal.RequireFromString("1.5")
	pensionRate    = decimal.RequireFromString("0.10")
	healthRate     = decimal.RequireFromString("0.07")
	monthlyHours   = decimal.NewFromInt(30 * 8)
)

// ErrInvalidPayrollInput indicates a negative amount or non-positive base
// salary. Invalid amounts are rejected, never clamped.
var ErrInvalidPayrollInput = errors.New("payroll: invalid input")

// TaxPolicy computes income tax over the taxable base (gross minus statutory
// deductions). The default single-bracket policy is a placeholder, not a
// compliance-accurate tax table; swap it out without touching the rest of the
// payroll flow.
type TaxPolicy interface {
	Tax(taxable decimal.Decimal) decimal.Decimal
}

// SingleBracketPolicy taxes the portion of taxable income above Threshold at a
// flat Rate.
type SingleBracketPolicy struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

func (p SingleBracketPolicy) Tax(taxable decimal.Decimal) decimal.Decimal {
	excess := taxable.Sub(p.Threshold)
	if !excess.IsPositive() {
		return decimal.Zero
	}
	return excess.Mul(p.Rate)
}

// DefaultTaxPolicy is the flat 8% bracket above 1,500,000.
func DefaultTaxPolicy() TaxPolicy {
	return SingleBracketPolicy{
		Threshold: decimal.NewFromInt(1_500_000),
		Rate:      decimal.RequireFromString("0.08"),
	}
}

// Input carries the parameters of one payslip computation.
type Input struct {
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	Bonuses         decimal.Decimal `json:"bonuses"`
	Allowances      decimal.Decimal `json:"allowances"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
}

// Calculation is the monetary derivation of a payslip.
type Calculation struct {
	OvertimeAmount   decimal.Decimal `json:"overtime_amount"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	PensionDeduction decimal.Decimal `json:"pension_deduction"`
	HealthDeduction  decimal.Decimal `json:"health_deduction"`
	TaxableIncome    decimal.Decimal `json:"taxable_income"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	NetSalary        decimal.Decimal `json:"net_salary"`
}

// ValidateInput guards the calculator boundary.
func ValidateInput(in Input) error {
	if !in.BaseSalary.IsPositive() {
		return fmt.Errorf("%w: base salary must be positive", ErrInvalidPayrollInput)
	}
	if in.OvertimeHours.IsNegative() {
		return fmt.Errorf("%w: overtime hours cannot be negative", ErrInvalidPayrollInput)
	}
	if in.Bonuses.IsNegative() {
		return fmt.Errorf("%w: bonuses cannot be negative", ErrInvalidPayrollInput)
	}
	if in.Allowances.IsNegative() {
		return fmt.Errorf("%w: allowances cannot be negative", ErrInvalidPayrollInput)
	}
	if in.OtherDeductions.IsNegative() {
		return fmt.Errorf("%w: other deductions cannot be negative", ErrInvalidPayrollInput)
	}
	return nil
}

// Calculate derives net pay from validated input. Pension and health are
// withheld on the gross, income tax on the gross net of those withholdings.
func Calculate(in Input, policy TaxPolicy) Calculation {
	overtimeRate := in.BaseSalary.Div(monthlyHours).Mul(overtimeFactor)
	overtimeAmount := in.OvertimeHours.Mul(overtimeRate)
	gross := in.BaseSalary.Add(overtimeAmount).Add(in.Bonuses).Add(in.Allowances)
	pension := gross.Mul(pensionRate)
	health := gross.Mul(healthRate)
	taxable := gross.Sub(pension).Sub(health)
	tax := policy.Tax(taxable)
	net := taxable.Sub(tax).Sub(in.OtherDeductions)
	return Calculation{
		OvertimeAmount:   overtimeAmount,
		GrossSalary:      gross,
		PensionDeduction: pension,
		HealthDeduction:  health,
		TaxableIncome:    taxable,
		IncomeTax:        tax,
		NetSalary:        net,
	}
}
