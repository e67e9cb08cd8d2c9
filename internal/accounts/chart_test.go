package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

func codes(accounts []model.Account) []string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = a.Code
	}
	return out
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.Len(t, chart, 76)

	c := NewChart(chart)
	for _, code := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		acct, ok := c.Get(code)
		require.True(t, ok, "class %s should exist", code)
		assert.True(t, acct.Protected, "class %s should be protected", code)
		assert.True(t, acct.IsRoot())
	}

	// Every non-root parent exists.
	for _, a := range chart {
		assert.NotEmpty(t, a.Name)
		assert.True(t, a.Nature.Valid(), "account %s nature", a.Code)
		if a.ParentID != "" {
			assert.True(t, c.Exists(a.ParentID), "parent of %s", a.Code)
			assert.False(t, a.Protected)
		}
	}
}

func TestAddAccount(t *testing.T) {
	c := NewChart(DefaultChart())

	acct, err := c.AddAccount(AddAccountParams{Code: "31.1.1", Name: "Cliente Alfa", ParentID: "31.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, model.NatureMixed, acct.Nature)
	assert.False(t, acct.Protected)

	got, ok := c.Get(acct.ID)
	require.True(t, ok)
	assert.Equal(t, acct, got)
	assert.Equal(t, 77, c.Len())

	byCode, ok := c.ByCode("31.1.1")
	require.True(t, ok)
	assert.Equal(t, acct.ID, byCode.ID)
}

func TestAddAccount_Root(t *testing.T) {
	c := NewChart(nil)
	acct, err := c.AddAccount(AddAccountParams{Code: "9", Name: "Analítica", Nature: model.NatureDebit})
	require.NoError(t, err)
	assert.True(t, acct.IsRoot())
	assert.Equal(t, model.NatureDebit, acct.Nature)
}

func TestAddAccount_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params AddAccountParams
	}{
		{"empty code", AddAccountParams{Code: " ", Name: "X"}},
		{"empty name", AddAccountParams{Code: "99", Name: ""}},
		{"unknown parent", AddAccountParams{Code: "99", Name: "X", ParentID: "nope"}},
		{"duplicate code", AddAccountParams{Code: "45.1", Name: "X", ParentID: "45"}},
		{"bad nature", AddAccountParams{Code: "99", Name: "X", Nature: "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChart(DefaultChart())
			_, err := c.AddAccount(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Equal(t, 76, c.Len(), "chart must be unchanged")
		})
	}
}

func TestRemoveAccount(t *testing.T) {
	c := NewChart(DefaultChart())
	require.NoError(t, c.RemoveAccount("75.2.21"))
	assert.False(t, c.Exists("75.2.21"))
	assert.Equal(t, []string{"75.2.11", "75.2.12"}, codes(c.ChildrenOf("75.2")))
}

func TestRemoveAccount_Protected(t *testing.T) {
	c := NewChart(DefaultChart())
	before := c.All()

	err := c.RemoveAccount("6")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProtectedAccount)
	assert.Equal(t, before, c.All())
}

func TestRemoveAccount_WithChildren(t *testing.T) {
	c := NewChart(DefaultChart())
	err := c.RemoveAccount("34.5")
	assert.ErrorIs(t, err, model.ErrAccountInUse)
	assert.True(t, c.Exists("34.5"))
}

func TestRemoveAccount_Unknown(t *testing.T) {
	c := NewChart(DefaultChart())
	assert.ErrorIs(t, c.RemoveAccount("nope"), model.ErrNotFound)
}

func TestChildrenOf(t *testing.T) {
	c := NewChart(DefaultChart())
	assert.Equal(t, []string{"61", "62", "66"}, codes(c.ChildrenOf("6")))
	assert.Equal(t, []string{"34.3", "34.5"}, codes(c.ChildrenOf("34")))
	assert.Empty(t, c.ChildrenOf("45.1"))
	assert.Empty(t, c.ChildrenOf(""))
}

func TestSortedByCode(t *testing.T) {
	c := NewChart([]model.Account{
		{ID: "c", Code: "10"},
		{ID: "b", Code: "2.1"},
		{ID: "a", Code: "2"},
	})
	assert.Equal(t, []string{"2", "2.1", "10"}, codes(c.SortedByCode()))
	// Insertion order is preserved by All.
	assert.Equal(t, []string{"10", "2.1", "2"}, codes(c.All()))
}

func TestNewChart_CopiesInput(t *testing.T) {
	input := []model.Account{{ID: "1", Code: "1", Name: "A"}}
	c := NewChart(input)
	input[0].Name = "changed"
	got, _ := c.Get("1")
	assert.Equal(t, "A", got.Name)
}
