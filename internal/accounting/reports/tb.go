package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

// BuildTrialBalance converts per-account totals into the trial balance.
// Accounts without activity are excluded; account names degrade to the
// chart placeholder when a historic code is no longer defined.
func BuildTrialBalance(chart coa.Chart, totals []AccountTotals) TrialBalance {
	result := TrialBalance{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range totals {
		if !acc.Debit.IsPositive() && !acc.Credit.IsPositive() {
			continue
		}
		row := TrialBalanceRow{
			Code:    acc.Code,
			Name:    chart.Name(acc.Code),
			Debit:   acc.Debit,
			Credit:  acc.Credit,
			Balance: acc.Debit.Sub(acc.Credit),
		}
		result.Rows = append(result.Rows, row)
		result.TotalDebit = result.TotalDebit.Add(row.Debit)
		result.TotalCredit = result.TotalCredit.Add(row.Credit)
	}
	sort.Slice(result.Rows, func(i, j int) bool {
		return result.Rows[i].Code < result.Rows[j].Code
	})
	diff := result.TotalDebit.Sub(result.TotalCredit)
	result.IsBalanced = diff.Abs().LessThan(balanceTolerance)
	return result
}
