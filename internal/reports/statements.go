package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeStatement is the result of one fiscal year.
type IncomeStatement struct {
	CompanyID string
	Year      int
	// Revenue is the class 6 balance, sign-flipped: revenue accounts carry
	// credit balances.
	Revenue    decimal.Decimal
	Expenses   decimal.Decimal // class 7
	StaffCosts decimal.Decimal // class 72, included in Expenses
	NetResult  decimal.Decimal // Revenue - Expenses
}

// NewIncomeStatement projects the income statement.
func NewIncomeStatement(v *View) IncomeStatement {
	revenue := v.Code(CodeRevenue).Abs()
	expenses := v.Code(CodeExpenses)
	return IncomeStatement{
		CompanyID:  v.CompanyID,
		Year:       v.Year,
		Revenue:    revenue,
		Expenses:   expenses,
		StaffCosts: v.Code(CodeStaffCosts),
		NetResult:  revenue.Sub(expenses),
	}
}

// BalanceSheet is the financial position at the end of a fiscal year.
type BalanceSheet struct {
	CompanyID              string
	Year                   int
	AsOf                   time.Time
	Assets                 []Line
	TotalAssets            decimal.Decimal
	LiabilitiesEquity      []Line
	TotalLiabilitiesEquity decimal.Decimal
}

// NewBalanceSheet projects the balance sheet as of 31 December.
func NewBalanceSheet(v *View) BalanceSheet {
	income := NewIncomeStatement(v)

	assets := []Line{
		{Label: "Fixed assets", Codes: []string{CodeFixedAssets}, Amount: v.Code(CodeFixedAssets)},
		{Label: "Inventories", Codes: []string{CodeInventories}, Amount: v.Code(CodeInventories)},
		{Label: "Receivables", Codes: []string{CodeCustomers}, Amount: v.Code(CodeCustomers)},
		{Label: "Cash and equivalents", Codes: []string{CodeCash}, Amount: v.Code(CodeCash)},
	}
	liabilities := []Line{
		{Label: "Equity", Codes: []string{CodeEquity}, Amount: v.Code(CodeEquity).Abs()},
		{Label: "Retained earnings", Codes: []string{CodeRetainedEarnings}, Amount: v.Code(CodeRetainedEarnings)},
		{Label: "Net result for the year", Codes: []string{CodeRevenue, CodeExpenses}, Amount: income.NetResult},
		{Label: "Payables", Codes: []string{CodeSuppliers, CodeState}, Amount: v.absSum(CodeSuppliers, CodeState)},
	}

	return BalanceSheet{
		CompanyID:              v.CompanyID,
		Year:                   v.Year,
		AsOf:                   time.Date(v.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Assets:                 assets,
		TotalAssets:            total(assets),
		LiabilitiesEquity:      liabilities,
		TotalLiabilitiesEquity: total(liabilities),
	}
}

func total(lines []Line) decimal.Decimal {
	t := decimal.Zero
	for _, l := range lines {
		t = t.Add(l.Amount)
	}
	return t
}
