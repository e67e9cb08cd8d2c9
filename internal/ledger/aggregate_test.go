package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func entry(year int, lines ...model.PostingLine) model.JournalEntry {
	return model.JournalEntry{Date: date(year, 6, 30), FiscalYear: year, Lines: lines}
}

func dr(account, amount string) model.PostingLine {
	return model.PostingLine{AccountID: account, Debit: dec(amount)}
}

func cr(account, amount string) model.PostingLine {
	return model.PostingLine{AccountID: account, Credit: dec(amount)}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestAggregate_RevenueScenario(t *testing.T) {
	chart := []model.Account{
		{ID: "6", Code: "6", Name: "Revenue", Nature: model.NatureCredit, Protected: true},
		{ID: "61", Code: "61", Name: "Sales", Nature: model.NatureCredit, ParentID: "6"},
		{ID: "45", Code: "45", Name: "Cash", Nature: model.NatureDebit},
	}
	entries := []model.JournalEntry{entry(2025, dr("45", "1000"), cr("61", "1000"))}

	got, err := Aggregate(chart, entries)
	require.NoError(t, err)
	assertAmount(t, "-1000", got.Get("61"))
	assertAmount(t, "-1000", got.Get("6"))
	assertAmount(t, "1000", got.Get("45"))
}

func TestAggregate_DeepTree(t *testing.T) {
	chart := accounts.DefaultChart()
	entries := []model.JournalEntry{
		entry(2025, dr("75.2.11", "120"), dr("75.2.12", "80"), cr("43.1", "200")),
		entry(2025, dr("43.1", "1000"), cr("51", "1000")),
		entry(2025, dr("11.1.1", "300"), cr("43.1", "300")),
	}

	got, err := Aggregate(chart, entries)
	require.NoError(t, err)

	assertAmount(t, "200", got.Get("75.2"))
	assertAmount(t, "200", got.Get("75"))
	assertAmount(t, "200", got.Get("7"))
	assertAmount(t, "500", got.Get("43"))
	assertAmount(t, "500", got.Get("4"))
	assertAmount(t, "-1000", got.Get("5"))
	assertAmount(t, "300", got.Get("11.1"))
	assertAmount(t, "300", got.Get("1"))
	assertAmount(t, "0", got.Get("2"))

	// Every chart account is present, even without postings.
	assert.Len(t, got, len(chart))

	// Class totals net to zero across the whole chart.
	total := decimal.Zero
	for _, a := range chart {
		if a.IsRoot() {
			total = total.Add(got.Get(a.ID))
		}
	}
	assertAmount(t, "0", total)
}

func TestAggregate_ParentEqualsDirectPlusChildren(t *testing.T) {
	chart := accounts.DefaultChart()
	entries := []model.JournalEntry{
		entry(2025, dr("34.5", "15"), dr("34.5.2", "50"), cr("34.5.3", "65")),
		entry(2025, dr("31.1", "400"), dr("31", "10"), cr("62", "410")),
		entry(2025, dr("72.2", "700"), cr("36.1", "630"), cr("34.3", "70")),
	}

	got, err := Aggregate(chart, entries)
	require.NoError(t, err)
	direct := DirectBalances(entries)

	c := accounts.NewChart(chart)
	for _, a := range chart {
		want := direct.Get(a.ID)
		for _, child := range c.ChildrenOf(a.ID) {
			want = want.Add(got.Get(child.ID))
		}
		assert.True(t, want.Equal(got.Get(a.ID)), "account %s: want %s, got %s", a.Code, want, got.Get(a.ID))
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	chart := accounts.DefaultChart()
	entries := []model.JournalEntry{entry(2025, dr("45.1", "10.55"), cr("61.3", "10.55"))}

	first, err := Aggregate(chart, entries)
	require.NoError(t, err)
	second, err := Aggregate(chart, entries)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregate_MalformedChart(t *testing.T) {
	tests := []struct {
		name  string
		chart []model.Account
	}{
		{"two-cycle", []model.Account{
			{ID: "a", Code: "1", ParentID: "b"},
			{ID: "b", Code: "2", ParentID: "a"},
		}},
		{"self parent", []model.Account{
			{ID: "a", Code: "1", ParentID: "a"},
		}},
		{"cycle below a root", []model.Account{
			{ID: "r", Code: "1"},
			{ID: "a", Code: "1.1", ParentID: "c"},
			{ID: "b", Code: "1.2", ParentID: "a"},
			{ID: "c", Code: "1.3", ParentID: "b"},
		}},
		{"dangling parent", []model.Account{
			{ID: "a", Code: "1", ParentID: "ghost"},
		}},
		{"duplicate id", []model.Account{
			{ID: "a", Code: "1"},
			{ID: "a", Code: "2"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(tt.chart, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrMalformedChart)
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	got, err := Aggregate(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDirectBalances(t *testing.T) {
	entries := []model.JournalEntry{
		entry(2025, dr("A", "500"), cr("B", "300"), cr("C", "200")),
		entry(2025, dr("B", "50"), cr("A", "50")),
	}
	got := DirectBalances(entries)
	assertAmount(t, "450", got.Get("A"))
	assertAmount(t, "-250", got.Get("B"))
	assertAmount(t, "-200", got.Get("C"))
	assertAmount(t, "0", got.Get("D"))
	_, ok := got["D"]
	assert.False(t, ok)
}
