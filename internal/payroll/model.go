package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip is one employee's settled pay for a period. Amounts are computed
// server-side from the inputs and stored alongside them.
type Payslip struct {
	ID               int64           `json:"id"`
	EmployeeName     string          `json:"employee_name"`
	PeriodYear       int             `json:"period_year"`
	PeriodMonth      int             `json:"period_month"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	OvertimeAmount   decimal.Decimal `json:"overtime_amount"`
	Bonuses          decimal.Decimal `json:"bonuses"`
	Allowances       decimal.Decimal `json:"allowances"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	PensionDeduction decimal.Decimal `json:"pension_deduction"`
	HealthDeduction  decimal.Decimal `json:"health_deduction"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	CreatedBy        int64           `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}
