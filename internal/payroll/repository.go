package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates a missing payslip.
var ErrNotFound = errors.New("payroll: not found")

type Repository interface {
	Create(ctx context.Context, p Payslip) (int64, error)
	Get(ctx context.Context, id int64) (*Payslip, error)
	List(ctx context.Context, req ListPayslipsRequest) ([]Payslip, int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const payslipColumns = `id, employee_name, period_year, period_month,
base_salary, overtime_hours, overtime_amount, bonuses, allowances,
gross_salary, pension_deduction, health_deduction, income_tax, other_deductions, net_salary,
created_by, created_at`

func (r *repository) Create(ctx context.Context, p Payslip) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO payslips
(employee_name, period_year, period_month, base_salary, overtime_hours, overtime_amount,
 bonuses, allowances, gross_salary, pension_deduction, health_deduction, income_tax,
 other_deductions, net_salary, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
RETURNING id`,
		p.EmployeeName, p.PeriodYear, p.PeriodMonth, p.BaseSalary, p.OvertimeHours, p.OvertimeAmount,
		p.Bonuses, p.Allowances, p.GrossSalary, p.PensionDeduction, p.HealthDeduction, p.IncomeTax,
		p.OtherDeductions, p.NetSalary, p.CreatedBy).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("payroll: create payslip: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Payslip, error) {
	var p Payslip
	err := r.pool.QueryRow(ctx, `SELECT `+payslipColumns+` FROM payslips WHERE id=$1`, id).Scan(
		&p.ID, &p.EmployeeName, &p.PeriodYear, &p.PeriodMonth,
		&p.BaseSalary, &p.OvertimeHours, &p.OvertimeAmount, &p.Bonuses, &p.Allowances,
		&p.GrossSalary, &p.PensionDeduction, &p.HealthDeduction, &p.IncomeTax, &p.OtherDeductions, &p.NetSalary,
		&p.CreatedBy, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListPayslipsRequest) ([]Payslip, int, error) {
	where := []string{"1=1"}
	args := []any{}
	idx := 1
	if req.PeriodYear != nil {
		where = append(where, fmt.Sprintf("period_year=$%d", idx))
		args = append(args, *req.PeriodYear)
		idx++
	}
	if req.PeriodMonth != nil {
		where = append(where, fmt.Sprintf("period_month=$%d", idx))
		args = append(args, *req.PeriodMonth)
		idx++
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM payslips WHERE %s ORDER BY period_year DESC, period_month DESC, id DESC LIMIT $%d OFFSET $%d`,
		payslipColumns, cond, idx, idx+1)
	args = append(args, limit, req.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []Payslip
	for rows.Next() {
		var p Payslip
		if err := rows.Scan(
			&p.ID, &p.EmployeeName, &p.PeriodYear, &p.PeriodMonth,
			&p.BaseSalary, &p.OvertimeHours, &p.OvertimeAmount, &p.Bonuses, &p.Allowances,
			&p.GrossSalary, &p.PensionDeduction, &p.HealthDeduction, &p.IncomeTax, &p.OtherDeductions, &p.NetSalary,
			&p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}
