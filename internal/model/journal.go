package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingLine is one debit or credit against one account.
type PostingLine struct {
	ID        string
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Net returns debit minus credit.
func (l PostingLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// IsBlank reports whether the line references no account and carries no amount.
func (l PostingLine) IsBlank() bool {
	return l.AccountID == "" && l.Debit.IsZero() && l.Credit.IsZero()
}

// JournalEntry is a dated, balanced set of posting lines.
type JournalEntry struct {
	ID          string
	Date        time.Time
	FiscalYear  int // derived from Date
	Narrative   string
	Attachments []string // opaque references
	Lines       []PostingLine
}

// Totals returns the sums of debits and credits across all lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Ledger is the account set and entry set of one company, as exchanged
// with the persistence layer.
type Ledger struct {
	Accounts []Account
	Entries  []JournalEntry
}
