package reports

import (
	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

// currentEarningsLabel names the synthetic equity line that folds the
// not-yet-closed revenue and expense balances into the balance sheet, keeping
// the accounting identity intact between period closes.
const currentEarningsLabel = "Resultado del ejercicio"

// BuildBalanceSheet aggregates balances into assets, liabilities, and equity as
// of a date. Only accounts with a positive normal-side balance are listed.
// Revenue and expense activity is folded into equity as current earnings.
func BuildBalanceSheet(chart coa.Chart, totals []AccountTotals) BalanceSheet {
	result := BalanceSheet{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	currentEarnings := decimal.Zero
	for _, acc := range totals {
		accType, err := coa.Classify(acc.Code)
		if err != nil {
			continue
		}
		balance := normalBalance(accType, acc)
		line := StatementLine{Code: acc.Code, Name: chart.Name(acc.Code), Amount: balance}
		switch accType {
		case coa.AccountTypeAsset:
			if balance.IsPositive() {
				result.Assets = append(result.Assets, line)
				result.TotalAssets = result.TotalAssets.Add(balance)
			}
		case coa.AccountTypeLiability:
			if balance.IsPositive() {
				result.Liabilities = append(result.Liabilities, line)
				result.TotalLiabilities = result.TotalLiabilities.Add(balance)
			}
		case coa.AccountTypeEquity:
			if balance.IsPositive() {
				result.Equity = append(result.Equity, line)
				result.TotalEquity = result.TotalEquity.Add(balance)
			}
		case coa.AccountTypeRevenue:
			currentEarnings = currentEarnings.Add(balance)
		case coa.AccountTypeExpense:
			currentEarnings = currentEarnings.Sub(balance)
		}
	}
	sortLines(result.Assets)
	sortLines(result.Liabilities)
	sortLines(result.Equity)
	if !currentEarnings.IsZero() {
		result.Equity = append(result.Equity, StatementLine{Name: currentEarningsLabel, Amount: currentEarnings})
		result.TotalEquity = result.TotalEquity.Add(currentEarnings)
	}
	diff := result.TotalAssets.Sub(result.TotalLiabilities.Add(result.TotalEquity))
	result.IsBalanced = diff.Abs().LessThan(balanceTolerance)
	return result
}
