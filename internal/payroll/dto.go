package payroll

import (
	"github.com/shopspring/decimal"
)

type CreatePayslipRequest struct {
	EmployeeName    string          `json:"employee_name" validate:"required,max=200"`
	PeriodYear      int             `json:"period_year" validate:"required,min=2000,max=2100"`
	PeriodMonth     int             `json:"period_month" validate:"required,min=1,max=12"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	Bonuses         decimal.Decimal `json:"bonuses"`
	Allowances      decimal.Decimal `json:"allowances"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
}

func (r CreatePayslipRequest) input() Input {
	return Input{
		BaseSalary:      r.BaseSalary,
		OvertimeHours:   r.OvertimeHours,
		Bonuses:         r.Bonuses,
		Allowances:      r.Allowances,
		OtherDeductions: r.OtherDeductions,
	}
}

type ListPayslipsRequest struct {
	PeriodYear  *int `json:"period_year,omitempty"`
	PeriodMonth *int `json:"period_month,omitempty"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
}
