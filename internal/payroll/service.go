package payroll

import (
	"context"
	"fmt"
)

type Service struct {
	repo   Repository
	policy TaxPolicy
}

func NewService(repo Repository, policy TaxPolicy) *Service {
	if policy == nil {
		policy = DefaultTaxPolicy()
	}
	return &Service{repo: repo, policy: policy}
}

// Calculate runs the pure derivation without persisting anything.
func (s *Service) Calculate(_ context.Context, in Input) (Calculation, error) {
	if err := ValidateInput(in); err != nil {
		return Calculation{}, err
	}
	return Calculate(in, s.policy), nil
}

func (s *Service) Create(ctx context.Context, req CreatePayslipRequest, createdBy int64) (*Payslip, error) {
	in := req.input()
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	calc := Calculate(in, s.policy)

	payslip := Payslip{
		EmployeeName:     req.EmployeeName,
		PeriodYear:       req.PeriodYear,
		PeriodMonth:      req.PeriodMonth,
		BaseSalary:       in.BaseSalary,
		OvertimeHours:    in.OvertimeHours,
		OvertimeAmount:   calc.OvertimeAmount,
		Bonuses:          in.Bonuses,
		Allowances:       in.Allowances,
		GrossSalary:      calc.GrossSalary,
		PensionDeduction: calc.PensionDeduction,
		HealthDeduction:  calc.HealthDeduction,
		IncomeTax:        calc.IncomeTax,
		OtherDeductions:  in.OtherDeductions,
		NetSalary:        calc.NetSalary,
		CreatedBy:        createdBy,
	}

	id, err := s.repo.Create(ctx, payslip)
	if err != nil {
		return nil, fmt.Errorf("create payslip: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Payslip, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListPayslipsRequest) ([]Payslip, int, error) {
	return s.repo.List(ctx, req)
}
