// Package coa holds the chart of accounts: the registry of account codes, their
// names, and their classification. A Chart is an immutable value injected into
// the ledger and reporting services, so tests can run with alternate charts.
package coa

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Side tags which column of a movement an amount lives in.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// AccountType enumerates chart of accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// NormalSide returns the side on which an account of this type normally carries
// its balance. Reports use this tag instead of duplicating sign-flip logic per
// statement.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// ErrUnknownAccount indicates a code whose leading digit does not map to a
// classification. Codes merely missing from the chart are not errors; historic
// data may reference retired codes and reporting must still succeed.
var ErrUnknownAccount = errors.New("coa: account code not classified")

// PlaceholderName labels accounts missing from the chart in reports.
const PlaceholderName = "Cuenta no definida"

// costPrefix marks expense accounts treated as cost of sales in the income
// statement. The split is a presentation convention, not a ledger concept.
const costPrefix = "51"

// Account is one chart row.
type Account struct {
	Code string      `json:"code"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// Chart maps account codes to names. The zero value is an empty chart.
type Chart struct {
	names map[string]string
}

// NewChart copies the given mapping into an immutable Chart.
func NewChart(names map[string]string) Chart {
	copied := make(map[string]string, len(names))
	for code, name := range names {
		copied[code] = name
	}
	return Chart{names: copied}
}

// Classify resolves the account type from the code's leading digit:
// 1 asset, 2 liability, 3 equity, 4 revenue, 5 expense.
func Classify(code string) (AccountType, error) {
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrUnknownAccount)
	}
	switch code[0] {
	case '1':
		return AccountTypeAsset, nil
	case '2':
		return AccountTypeLiability, nil
	case '3':
		return AccountTypeEquity, nil
	case '4':
		return AccountTypeRevenue, nil
	case '5':
		return AccountTypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAccount, code)
	}
}

// Name returns the account name, degrading to PlaceholderName for codes not in
// the chart.
func (c Chart) Name(code string) string {
	if name, ok := c.names[code]; ok {
		return name
	}
	return PlaceholderName
}

// Lookup reports whether a code is defined in the chart.
func (c Chart) Lookup(code string) (string, bool) {
	name, ok := c.names[code]
	return name, ok
}

// IsCostOfSales reports whether an expense code belongs to the cost-of-sales
// sub-range.
func IsCostOfSales(code string) bool {
	return strings.HasPrefix(code, costPrefix)
}

// Accounts lists the chart sorted by code. Codes with an unknown leading digit
// are skipped rather than failing the listing.
func (c Chart) Accounts() []Account {
	out := make([]Account, 0, len(c.names))
	for code, name := range c.names {
		accType, err := Classify(code)
		if err != nil {
			continue
		}
		out = append(out, Account{Code: code, Name: name, Type: accType})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of defined accounts.
func (c Chart) Len() int {
	return len(c.names)
}
