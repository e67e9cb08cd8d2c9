package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/journal"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Book is one company's chart of accounts and journal. It is not safe for
// concurrent use; callers serialise mutation and computation.
type Book struct {
	CompanyID string
	chart     *accounts.Chart
	journal   *journal.Store
}

// NewBook builds a Book from a company's persisted data.
func NewBook(companyID string, data model.Ledger) *Book {
	return &Book{
		CompanyID: companyID,
		chart:     accounts.NewChart(data.Accounts),
		journal:   journal.NewStore(data.Entries),
	}
}

// Data returns the account set and entry set for persistence.
func (b *Book) Data() model.Ledger {
	return model.Ledger{
		Accounts: b.chart.All(),
		Entries:  b.journal.All(),
	}
}

// Accounts returns the chart in natural code order.
func (b *Book) Accounts() []model.Account {
	return b.chart.SortedByCode()
}

// Account returns an account by ID.
func (b *Book) Account(accountID string) (model.Account, bool) {
	return b.chart.Get(accountID)
}

// AccountByCode returns the account carrying code.
func (b *Book) AccountByCode(code string) (model.Account, bool) {
	return b.chart.ByCode(code)
}

// ChildrenOf returns the direct children of an account.
func (b *Book) ChildrenOf(accountID string) []model.Account {
	return b.chart.ChildrenOf(accountID)
}

// Depth returns the number of ancestors of an account: 0 for a class.
func (b *Book) Depth(accountID string) int {
	depth := 0
	acct, ok := b.chart.Get(accountID)
	// A cyclic chart cannot be deeper than the chart is long.
	for ok && acct.ParentID != "" && depth < b.chart.Len() {
		depth++
		acct, ok = b.chart.Get(acct.ParentID)
	}
	return depth
}

// AddAccount creates an account in the chart.
func (b *Book) AddAccount(params accounts.AddAccountParams) (model.Account, error) {
	return b.chart.AddAccount(params)
}

// RemoveAccount deletes an account that is neither protected nor referenced
// by sub-accounts or postings in any year.
func (b *Book) RemoveAccount(accountID string) error {
	if acct, ok := b.chart.Get(accountID); ok && !acct.Protected && b.journal.References(accountID) {
		return fmt.Errorf("%w: %s has postings", model.ErrAccountInUse, acct.Code)
	}
	return b.chart.RemoveAccount(accountID)
}

// Entries returns every journal entry in store order.
func (b *Book) Entries() []model.JournalEntry {
	return b.journal.All()
}

// Entry returns a journal entry by ID.
func (b *Book) Entry(entryID string) (model.JournalEntry, bool) {
	return b.journal.Get(entryID)
}

// EntriesForYear returns the entries of one fiscal year in store order.
func (b *Book) EntriesForYear(year int) []model.JournalEntry {
	return b.journal.EntriesForYear(year)
}

// Years returns the fiscal years that have entries.
func (b *Book) Years() []int {
	return b.journal.Years()
}

// Post validates and appends a new journal entry.
func (b *Book) Post(entry model.JournalEntry) (model.JournalEntry, error) {
	if err := b.checkAccounts(entry.Lines); err != nil {
		return model.JournalEntry{}, err
	}
	return b.journal.Append(entry)
}

// Amend validates entry and replaces the stored entry entryID with it.
func (b *Book) Amend(entryID string, entry model.JournalEntry) (model.JournalEntry, error) {
	if err := b.checkAccounts(entry.Lines); err != nil {
		return model.JournalEntry{}, err
	}
	return b.journal.Replace(entryID, entry)
}

// DeleteEntry removes a journal entry.
func (b *Book) DeleteEntry(entryID string) error {
	return b.journal.Remove(entryID)
}

func (b *Book) checkAccounts(lines []model.PostingLine) error {
	for i, l := range lines {
		if l.AccountID != "" && !b.chart.Exists(l.AccountID) {
			return fmt.Errorf("%w: line %d references unknown account %q", model.ErrValidation, i+1, l.AccountID)
		}
	}
	return nil
}

// Snapshot holds the balances of one company for one fiscal year. It is
// never persisted.
type Snapshot struct {
	CompanyID string
	Year      int
	Balances  Balances // roll-up balances, every chart account present
	Direct    Balances // postings made directly to each account
	// Unassigned holds postings to accounts missing from the chart. They do
	// not roll up into any class.
	Unassigned Balances
}

// Balance returns the roll-up balance of accountID.
func (s *Snapshot) Balance(accountID string) decimal.Decimal {
	return s.Balances.Get(accountID)
}

// Snapshot aggregates the entries of year over the chart.
func (b *Book) Snapshot(year int) (*Snapshot, error) {
	entries := b.journal.EntriesForYear(year)
	balances, err := Aggregate(b.chart.All(), entries)
	if err != nil {
		return nil, fmt.Errorf("aggregating %s/%d: %w", b.CompanyID, year, err)
	}

	direct := DirectBalances(entries)
	unassigned := make(Balances)
	for accountID, amount := range direct {
		if !b.chart.Exists(accountID) {
			unassigned[accountID] = amount
		}
	}

	return &Snapshot{
		CompanyID:  b.CompanyID,
		Year:       year,
		Balances:   balances,
		Direct:     direct,
		Unassigned: unassigned,
	}, nil
}
