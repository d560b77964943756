package reports

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testChart() coa.Chart {
	return coa.NewChart(map[string]string{
		"110000": "Caja y bancos",
		"210000": "Proveedores",
		"310000": "Capital",
		"410000": "Ingresos por contratos",
		"510000": "Costo de materiales",
		"520000": "Gastos administración",
	})
}

func TestTrialBalanceFromSingleEntry(t *testing.T) {
	tb := BuildTrialBalance(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("100000"), Credit: decimal.Zero},
		{Code: "410000", Debit: decimal.Zero, Credit: amount("100000")},
	})
	if len(tb.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tb.Rows))
	}
	if !tb.Rows[0].Balance.Equal(amount("100000")) {
		t.Fatalf("110000 balance = %s, want 100000", tb.Rows[0].Balance)
	}
	if !tb.Rows[1].Balance.Equal(amount("-100000")) {
		t.Fatalf("410000 balance = %s, want -100000", tb.Rows[1].Balance)
	}
	if !tb.IsBalanced {
		t.Fatal("trial balance from a balanced entry must report is_balanced")
	}
}

func TestTrialBalanceSkipsInactiveAccounts(t *testing.T) {
	tb := BuildTrialBalance(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("50"), Credit: amount("50")},
		{Code: "210000"},
	})
	if len(tb.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tb.Rows))
	}
	if tb.Rows[0].Code != "110000" {
		t.Fatalf("kept %s, want 110000", tb.Rows[0].Code)
	}
}

func TestTrialBalanceSurfacesCorruption(t *testing.T) {
	tb := BuildTrialBalance(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("100")},
		{Code: "410000", Credit: amount("99")},
	})
	if tb.IsBalanced {
		t.Fatal("corrupted totals must not report is_balanced")
	}
}

func TestTrialBalanceNamesRetiredCodes(t *testing.T) {
	tb := BuildTrialBalance(testChart(), []AccountTotals{
		{Code: "199999", Debit: amount("10")},
		{Code: "410000", Credit: amount("10")},
	})
	if tb.Rows[0].Name != coa.PlaceholderName {
		t.Fatalf("retired code name = %q, want placeholder", tb.Rows[0].Name)
	}
}

func TestEmptyLedgerYieldsZeroStatements(t *testing.T) {
	chart := testChart()

	tb := BuildTrialBalance(chart, nil)
	if len(tb.Rows) != 0 || !tb.TotalDebit.IsZero() || !tb.IsBalanced {
		t.Fatalf("empty trial balance: %+v", tb)
	}

	is := BuildIncomeStatement(chart, nil)
	if !is.TotalRevenue.IsZero() || !is.NetIncome.IsZero() {
		t.Fatalf("empty income statement: %+v", is)
	}

	bs := BuildBalanceSheet(chart, nil)
	if !bs.TotalAssets.IsZero() || !bs.IsBalanced {
		t.Fatalf("empty balance sheet: %+v", bs)
	}
}

func TestIncomeStatementRevenueMinusExpenses(t *testing.T) {
	is := BuildIncomeStatement(testChart(), []AccountTotals{
		{Code: "410000", Credit: amount("100000")},
		{Code: "520000", Debit: amount("40000")},
	})
	if !is.TotalRevenue.Equal(amount("100000")) {
		t.Fatalf("total_revenue = %s, want 100000", is.TotalRevenue)
	}
	if !is.TotalExpenses.Equal(amount("40000")) {
		t.Fatalf("total_expenses = %s, want 40000", is.TotalExpenses)
	}
	if !is.NetIncome.Equal(amount("60000")) {
		t.Fatalf("net_income = %s, want 60000", is.NetIncome)
	}
}

func TestIncomeStatementSplitsCostOfSales(t *testing.T) {
	is := BuildIncomeStatement(testChart(), []AccountTotals{
		{Code: "410000", Credit: amount("100000")},
		{Code: "510000", Debit: amount("30000")},
		{Code: "520000", Debit: amount("25000")},
	})
	if len(is.Costs) != 1 || len(is.Expenses) != 1 {
		t.Fatalf("costs = %d, expenses = %d", len(is.Costs), len(is.Expenses))
	}
	if !is.GrossProfit.Equal(amount("70000")) {
		t.Fatalf("gross_profit = %s, want 70000", is.GrossProfit)
	}
	if !is.NetIncome.Equal(amount("45000")) {
		t.Fatalf("net_income = %s, want 45000", is.NetIncome)
	}
}

func TestIncomeStatementIgnoresBalanceSheetAccounts(t *testing.T) {
	is := BuildIncomeStatement(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("100000")},
		{Code: "210000", Credit: amount("100000")},
	})
	if len(is.Revenue) != 0 || len(is.Costs) != 0 || len(is.Expenses) != 0 {
		t.Fatalf("balance sheet accounts leaked into income statement: %+v", is)
	}
}

func TestBalanceSheetIdentityHolds(t *testing.T) {
	// Capital funding, a purchase on credit, and an invoiced sale.
	bs := BuildBalanceSheet(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("1100000"), Credit: amount("40000")},
		{Code: "210000", Credit: amount("40000"), Debit: amount("40000")},
		{Code: "310000", Credit: amount("1000000")},
		{Code: "410000", Credit: amount("100000")},
		{Code: "520000", Debit: amount("40000")},
	})
	if !bs.TotalAssets.Equal(amount("1060000")) {
		t.Fatalf("total_assets = %s, want 1060000", bs.TotalAssets)
	}
	if !bs.TotalEquity.Equal(amount("1060000")) {
		t.Fatalf("total_equity = %s, want 1060000", bs.TotalEquity)
	}
	if !bs.IsBalanced {
		t.Fatal("identity must hold for ledger-produced totals")
	}
}

func TestBalanceSheetFoldsCurrentEarnings(t *testing.T) {
	bs := BuildBalanceSheet(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("60000")},
		{Code: "410000", Credit: amount("100000")},
		{Code: "520000", Debit: amount("40000")},
	})
	last := bs.Equity[len(bs.Equity)-1]
	if last.Name != "Resultado del ejercicio" {
		t.Fatalf("missing current earnings line, got %+v", bs.Equity)
	}
	if !last.Amount.Equal(amount("60000")) {
		t.Fatalf("current earnings = %s, want 60000", last.Amount)
	}
	if !bs.IsBalanced {
		t.Fatal("identity must hold before period close")
	}
}

func TestBalanceSheetOmitsNonPositiveBalances(t *testing.T) {
	bs := BuildBalanceSheet(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("10"), Credit: amount("10")},
		{Code: "210000", Debit: amount("5"), Credit: amount("5")},
	})
	if len(bs.Assets) != 0 || len(bs.Liabilities) != 0 {
		t.Fatalf("zero balances listed: %+v", bs)
	}
}

func TestStatementsAreDeterministic(t *testing.T) {
	totals := []AccountTotals{
		{Code: "520000", Debit: amount("40000")},
		{Code: "410000", Credit: amount("100000")},
		{Code: "110000", Debit: amount("60000")},
	}
	first := BuildTrialBalance(testChart(), totals)
	second := BuildTrialBalance(testChart(), totals)
	if len(first.Rows) != len(second.Rows) {
		t.Fatal("row counts differ across identical builds")
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.Code != b.Code || !a.Debit.Equal(b.Debit) || !a.Credit.Equal(b.Credit) || !a.Balance.Equal(b.Balance) {
			t.Fatalf("row %d differs: %+v vs %+v", i, a, b)
		}
	}
}
