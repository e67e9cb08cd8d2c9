// Package reports projects a ledger Snapshot onto the financial statements
// of the Angolan general accounting plan. Every projection is a pure read
// of the snapshot plus a fixed mapping from report line to account codes.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/ledger"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Account codes referenced by the statements.
const (
	CodeFixedAssets      = "1"
	CodeInventories      = "2"
	CodeCustomers        = "31"
	CodeSuppliers        = "32"
	CodeState            = "34"
	CodeCash             = "4"
	CodeEquity           = "5"
	CodeRevenue          = "6"
	CodeExpenses         = "7"
	CodeStaffCosts       = "72"
	CodeRetainedEarnings = "81"
)

// View pairs a chart with the snapshot computed over it.
type View struct {
	CompanyID string
	Year      int
	accounts  []model.Account
	byCode    map[string]model.Account
	depth     map[string]int
	snap      *ledger.Snapshot
}

// NewView creates a View. accts is usually Book.Accounts().
func NewView(accts []model.Account, snap *ledger.Snapshot) *View {
	sorted := make([]model.Account, len(accts))
	copy(sorted, accts)
	accounts.SortByCode(sorted)

	byCode := make(map[string]model.Account, len(sorted))
	for _, a := range sorted {
		if _, dup := byCode[a.Code]; !dup {
			byCode[a.Code] = a
		}
	}
	return &View{
		CompanyID: snap.CompanyID,
		Year:      snap.Year,
		accounts:  sorted,
		byCode:    byCode,
		depth:     depths(sorted),
		snap:      snap,
	}
}

// depths counts the ancestors of every account. Parents missing from the
// chart end the walk.
func depths(accts []model.Account) map[string]int {
	parent := make(map[string]string, len(accts))
	for _, a := range accts {
		parent[a.ID] = a.ParentID
	}
	out := make(map[string]int, len(accts))
	for _, a := range accts {
		d := 0
		for p := a.ParentID; p != "" && d < len(accts); {
			d++
			next, ok := parent[p]
			if !ok {
				break
			}
			p = next
		}
		out[a.ID] = d
	}
	return out
}

// Code returns the roll-up balance of the account carrying code, zero when
// the chart has no such account.
func (v *View) Code(code string) decimal.Decimal {
	a, ok := v.byCode[code]
	if !ok {
		return decimal.Zero
	}
	return v.snap.Balance(a.ID)
}

// sum adds the balances of codes.
func (v *View) sum(codes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range codes {
		total = total.Add(v.Code(c))
	}
	return total
}

// absSum adds the absolute balances of codes.
func (v *View) absSum(codes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range codes {
		total = total.Add(v.Code(c).Abs())
	}
	return total
}

// Line is one labelled amount of a statement.
type Line struct {
	Label  string
	Codes  []string
	Amount decimal.Decimal
}
