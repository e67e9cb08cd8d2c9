package reports

import (
	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// TrialBalanceRow is one account of the trial balance.
type TrialBalanceRow struct {
	AccountID string
	Code      string
	Name      string
	Nature    model.Nature
	Depth     int // number of ancestors
	Balance   decimal.Decimal
}

// TrialBalance lists every account with its roll-up balance.
type TrialBalance struct {
	CompanyID string
	Year      int
	Rows      []TrialBalanceRow // ordered by code
	// Net is the sum of the root balances; zero for a balanced journal.
	Net decimal.Decimal
}

// NewTrialBalance projects the trial balance.
func NewTrialBalance(v *View) TrialBalance {
	tb := TrialBalance{CompanyID: v.CompanyID, Year: v.Year, Net: decimal.Zero}
	for _, a := range v.accounts {
		bal := v.snap.Balance(a.ID)
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountID: a.ID,
			Code:      a.Code,
			Name:      a.Name,
			Nature:    a.Nature,
			Depth:     v.depth[a.ID],
			Balance:   bal,
		})
		if a.IsRoot() {
			tb.Net = tb.Net.Add(bal)
		}
	}
	return tb
}
