package reports

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary gathers every projection of one company and fiscal year.
type Summary struct {
	CompanyID    string
	CompanyName  string
	Year         int
	Trial        TrialBalance
	BalanceSheet BalanceSheet
	Income       IncomeStatement
	Ratios       Ratios
}

// NewSummary computes all projections over v.
func NewSummary(v *View, companyName string) Summary {
	return Summary{
		CompanyID:    v.CompanyID,
		CompanyName:  companyName,
		Year:         v.Year,
		Trial:        NewTrialBalance(v),
		BalanceSheet: NewBalanceSheet(v),
		Income:       NewIncomeStatement(v),
		Ratios:       NewRatios(v),
	}
}

// Text renders the headline figures as plain text, one figure per line.
func (s Summary) Text() string {
	var b strings.Builder
	name := s.CompanyName
	if name == "" {
		name = s.CompanyID
	}
	fmt.Fprintf(&b, "Company: %s\n", name)
	fmt.Fprintf(&b, "Fiscal year: %d\n", s.Year)
	writeAmount(&b, "Revenue", s.Income.Revenue)
	writeAmount(&b, "Expenses", s.Income.Expenses)
	writeAmount(&b, "Staff costs", s.Income.StaffCosts)
	writeAmount(&b, "Net result", s.Income.NetResult)
	writeAmount(&b, "Total assets", s.BalanceSheet.TotalAssets)
	writeAmount(&b, "Total liabilities and equity", s.BalanceSheet.TotalLiabilitiesEquity)
	writeAmount(&b, "Current assets", s.Ratios.CurrentAssets)
	writeAmount(&b, "Current liabilities", s.Ratios.CurrentLiabilities)
	fmt.Fprintf(&b, "Liquidity ratio: %s\n", s.Ratios.Liquidity)
	fmt.Fprintf(&b, "Net margin: %s\n", s.Ratios.NetMargin)
	writeAmount(&b, "Treasury", s.Ratios.Treasury)
	return b.String()
}

func writeAmount(b *strings.Builder, label string, d decimal.Decimal) {
	fmt.Fprintf(b, "%s: %s\n", label, d.StringFixed(2))
}
