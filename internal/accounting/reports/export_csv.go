package reports

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const csvBufferSize = 32 * 1024

// csvAmount formats a monetary value with Spanish digit grouping for the
// exported file. Formatting is display-only; the JSON endpoints carry exact
// decimal strings.
type csvFormatter struct {
	printer *message.Printer
}

func newCSVFormatter() csvFormatter {
	return csvFormatter{printer: message.NewPrinter(language.Spanish)}
}

func (f csvFormatter) amount(value decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", value.InexactFloat64())
}

// WriteTrialBalanceCSV streams the trial balance as CSV.
func WriteTrialBalanceCSV(w io.Writer, tb TrialBalance, asOf string) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	formatter := newCSVFormatter()

	if _, err := buf.WriteString(fmt.Sprintf("# Balance de comprobación al %s\r\n", asOf)); err != nil {
		return err
	}
	if err := writer.Write([]string{"codigo", "cuenta", "debe", "haber", "saldo"}); err != nil {
		return err
	}
	for _, row := range tb.Rows {
		record := []string{
			row.Code,
			row.Name,
			formatter.amount(row.Debit),
			formatter.amount(row.Credit),
			formatter.amount(row.Balance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"", "TOTAL", formatter.amount(tb.TotalDebit), formatter.amount(tb.TotalCredit), ""}); err != nil {
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}
