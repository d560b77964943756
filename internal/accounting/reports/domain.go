// Package reports derives financial statements from recorded ledger movements.
// The builders are pure: they take per-account debit/credit totals plus a chart
// of accounts and return statement structures, so they can be tested without a
// database.
package reports

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange indicates dateFrom > dateTo for a period statement.
var ErrInvalidRange = errors.New("reports: date range start is after end")

// balanceTolerance bounds the acceptable drift in the is-balanced checks.
var balanceTolerance = decimal.RequireFromString("0.01")

// AccountTotals aggregates all movements of one account over the queried window.
type AccountTotals struct {
	Code   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalanceRow is one account line in the trial balance.
type TrialBalanceRow struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Debit   decimal.Decimal `json:"total_debit"`
	Credit  decimal.Decimal `json:"total_credit"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalance summarises debits and credits per account as of a date.
// IsBalanced false means the underlying data is corrupt; it is surfaced, never
// hidden.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"accounts"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	IsBalanced  bool              `json:"is_balanced"`
}

// StatementLine is one account row in the income statement or balance sheet.
type StatementLine struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeStatement reports revenue minus costs and expenses over a period.
// Costs versus operating expenses is a presentation split by account sub-prefix
// (see coa.IsCostOfSales); the ledger itself knows no such distinction.
type IncomeStatement struct {
	Revenue       []StatementLine `json:"revenue"`
	Costs         []StatementLine `json:"costs"`
	Expenses      []StatementLine `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCosts    decimal.Decimal `json:"total_costs"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// BalanceSheet reports assets against liabilities plus equity as of a date.
type BalanceSheet struct {
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Equity           []StatementLine `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	IsBalanced       bool            `json:"is_balanced"`
}
