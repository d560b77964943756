package reports

import (
	"strings"
	"testing"
)

func TestWriteTrialBalanceCSV(t *testing.T) {
	tb := BuildTrialBalance(testChart(), []AccountTotals{
		{Code: "110000", Debit: amount("100000")},
		{Code: "410000", Credit: amount("100000")},
	})

	var sb strings.Builder
	if err := WriteTrialBalanceCSV(&sb, tb, "2026-03-31"); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "# Balance de comprobación al 2026-03-31\r\n") {
		t.Fatalf("missing header comment: %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	// comment + column header + 2 accounts + total
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5: %q", len(lines), out)
	}
	if lines[1] != "codigo,cuenta,debe,haber,saldo" {
		t.Fatalf("column header = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "110000,Caja y bancos,") {
		t.Fatalf("first row = %q", lines[2])
	}
	if !strings.Contains(lines[4], "TOTAL") {
		t.Fatalf("total row = %q", lines[4])
	}
}
