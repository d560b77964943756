package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

// BuildIncomeStatement aggregates revenue and expense accounts over a period.
// Each account contributes its normal-side balance: credit minus debit for
// revenue, debit minus credit for costs and expenses.
func BuildIncomeStatement(chart coa.Chart, totals []AccountTotals) IncomeStatement {
	result := IncomeStatement{
		TotalRevenue:  decimal.Zero,
		TotalCosts:    decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, acc := range totals {
		accType, err := coa.Classify(acc.Code)
		if err != nil {
			continue
		}
		line := StatementLine{
			Code:   acc.Code,
			Name:   chart.Name(acc.Code),
			Amount: normalBalance(accType, acc),
		}
		switch accType {
		case coa.AccountTypeRevenue:
			result.Revenue = append(result.Revenue, line)
			result.TotalRevenue = result.TotalRevenue.Add(line.Amount)
		case coa.AccountTypeExpense:
			if coa.IsCostOfSales(acc.Code) {
				result.Costs = append(result.Costs, line)
				result.TotalCosts = result.TotalCosts.Add(line.Amount)
			} else {
				result.Expenses = append(result.Expenses, line)
				result.TotalExpenses = result.TotalExpenses.Add(line.Amount)
			}
		}
	}
	sortLines(result.Revenue)
	sortLines(result.Costs)
	sortLines(result.Expenses)
	result.GrossProfit = result.TotalRevenue.Sub(result.TotalCosts)
	result.NetIncome = result.GrossProfit.Sub(result.TotalExpenses)
	return result
}

// normalBalance computes the account balance on its normal side, so revenue and
// liability style accounts come out positive under normal operation.
func normalBalance(accType coa.AccountType, acc AccountTotals) decimal.Decimal {
	if accType.NormalSide() == coa.SideDebit {
		return acc.Debit.Sub(acc.Credit)
	}
	return acc.Credit.Sub(acc.Debit)
}

func sortLines(lines []StatementLine) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].Code < lines[j].Code })
}
