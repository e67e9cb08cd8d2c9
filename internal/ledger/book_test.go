package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

func newBook(t *testing.T) *Book {
	t.Helper()
	return NewBook("default", model.Ledger{Accounts: accounts.DefaultChart()})
}

func TestBook_PostAndSnapshot(t *testing.T) {
	b := newBook(t)

	_, err := b.Post(model.JournalEntry{
		Date:      date(2025, 3, 1),
		Narrative: "Venda",
		Lines:     []model.PostingLine{dr("45.1", "500"), cr("61.1", "300"), cr("62", "200")},
	})
	require.NoError(t, err)

	_, err = b.Post(model.JournalEntry{
		Date:  date(2025, 3, 2),
		Lines: []model.PostingLine{dr("45.1", "500"), cr("61.1", "400")},
	})
	assert.ErrorIs(t, err, model.ErrUnbalancedEntry)

	snap, err := b.Snapshot(2025)
	require.NoError(t, err)
	assert.Equal(t, "default", snap.CompanyID)
	assert.Equal(t, 2025, snap.Year)
	assertAmount(t, "-500", snap.Balance("6"))
	assertAmount(t, "500", snap.Balance("4"))
	assert.Empty(t, snap.Unassigned)
}

func TestBook_YearScoping(t *testing.T) {
	b := newBook(t)
	_, err := b.Post(model.JournalEntry{Date: date(2024, 12, 31), Lines: []model.PostingLine{dr("45.1", "70"), cr("61.1", "70")}})
	require.NoError(t, err)
	_, err = b.Post(model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("45.1", "30"), cr("61.1", "30")}})
	require.NoError(t, err)

	s24, err := b.Snapshot(2024)
	require.NoError(t, err)
	s25, err := b.Snapshot(2025)
	require.NoError(t, err)
	s26, err := b.Snapshot(2026)
	require.NoError(t, err)

	assertAmount(t, "70", s24.Balance("4"))
	assertAmount(t, "30", s25.Balance("4"))
	assertAmount(t, "0", s26.Balance("4"))
	assert.Equal(t, []int{2024, 2025}, b.Years())
}

func TestBook_PostUnknownAccount(t *testing.T) {
	b := newBook(t)
	_, err := b.Post(model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("99.9", "1"), cr("61.1", "1")}})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, b.Entries())
}

func TestBook_Amend(t *testing.T) {
	b := newBook(t)
	e, err := b.Post(model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("45.1", "10"), cr("61.1", "10")}})
	require.NoError(t, err)

	_, err = b.Amend(e.ID, model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("45.1", "25"), cr("62", "25")}})
	require.NoError(t, err)

	snap, err := b.Snapshot(2025)
	require.NoError(t, err)
	assertAmount(t, "0", snap.Balance("61"))
	assertAmount(t, "-25", snap.Balance("62"))

	_, err = b.Amend(e.ID, model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("ghost", "25"), cr("62", "25")}})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBook_DeleteEntry(t *testing.T) {
	b := newBook(t)
	e, err := b.Post(model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("45.1", "10"), cr("61.1", "10")}})
	require.NoError(t, err)

	require.NoError(t, b.DeleteEntry(e.ID))
	_, ok := b.Entry(e.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, b.DeleteEntry(e.ID), model.ErrNotFound)
}

func TestBook_RemoveAccount(t *testing.T) {
	b := newBook(t)

	acct, err := b.AddAccount(accounts.AddAccountParams{Code: "45.2", Name: "Caixa 2", ParentID: "45"})
	require.NoError(t, err)
	e, err := b.Post(model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr(acct.ID, "10"), cr("61.1", "10")}})
	require.NoError(t, err)

	err = b.RemoveAccount(acct.ID)
	assert.ErrorIs(t, err, model.ErrAccountInUse, "account with postings")

	require.NoError(t, b.DeleteEntry(e.ID))
	require.NoError(t, b.RemoveAccount(acct.ID))
	_, ok := b.Account(acct.ID)
	assert.False(t, ok)
}

func TestBook_RemoveProtectedAccount(t *testing.T) {
	b := newBook(t)
	before := b.Accounts()

	err := b.RemoveAccount("1")
	assert.ErrorIs(t, err, model.ErrProtectedAccount)
	assert.Equal(t, before, b.Accounts())
}

func TestBook_SnapshotUnassigned(t *testing.T) {
	b := NewBook("default", model.Ledger{
		Accounts: accounts.DefaultChart(),
		Entries: []model.JournalEntry{
			{ID: "2025-01-001", Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("removed", "10"), cr("61.1", "10")}},
		},
	})
	snap, err := b.Snapshot(2025)
	require.NoError(t, err)
	assertAmount(t, "10", snap.Unassigned.Get("removed"))
	_, ok := snap.Balances["removed"]
	assert.False(t, ok)
}

func TestBook_SnapshotMalformed(t *testing.T) {
	b := NewBook("broken", model.Ledger{Accounts: []model.Account{{ID: "a", Code: "1", ParentID: "a"}}})
	_, err := b.Snapshot(2025)
	assert.ErrorIs(t, err, model.ErrMalformedChart)
}

func TestBook_DataRoundTrip(t *testing.T) {
	b := newBook(t)
	_, err := b.Post(model.JournalEntry{Date: date(2025, 1, 1), Lines: []model.PostingLine{dr("45.1", "10"), cr("61.1", "10")}})
	require.NoError(t, err)

	reopened := NewBook("default", b.Data())
	assert.Equal(t, b.Entries(), reopened.Entries())
	assert.Equal(t, b.Accounts(), reopened.Accounts())
}

func TestBook_Depth(t *testing.T) {
	b := newBook(t)

	assert.Equal(t, 0, b.Depth("7"))
	assert.Equal(t, 1, b.Depth("75"))
	assert.Equal(t, 3, b.Depth("75.2.11"))
	assert.Equal(t, 0, b.Depth("missing"))
}
