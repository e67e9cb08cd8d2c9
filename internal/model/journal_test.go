package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEntryTotals(t *testing.T) {
	e := JournalEntry{Lines: []PostingLine{
		{AccountID: "43.1", Debit: dec("500")},
		{AccountID: "61.1", Credit: dec("300")},
		{AccountID: "62", Credit: dec("200")},
	}}
	debit, credit := e.Totals()
	assert.Equal(t, "500.00", debit.StringFixed(2))
	assert.Equal(t, "500.00", credit.StringFixed(2))
}

func TestPostingLineNet(t *testing.T) {
	assert.Equal(t, "-1000", PostingLine{Credit: dec("1000")}.Net().String())
	assert.Equal(t, "25", PostingLine{Debit: dec("75"), Credit: dec("50")}.Net().String())
}

func TestPostingLineIsBlank(t *testing.T) {
	assert.True(t, PostingLine{}.IsBlank())
	assert.False(t, PostingLine{AccountID: "45.1"}.IsBlank())
	assert.False(t, PostingLine{Debit: dec("1")}.IsBlank())
}

func TestTolerance(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"100.00", "100.00", true},
		{"100.00", "100.005", true},
		{"100.00", "100.01", false},
		{"0", "-0.009", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NearlyEqual(dec(tt.a), dec(tt.b)), "NearlyEqual(%s, %s)", tt.a, tt.b)
	}
}

func TestNatureValid(t *testing.T) {
	assert.True(t, NatureDebit.Valid())
	assert.True(t, NatureCredit.Valid())
	assert.True(t, NatureMixed.Valid())
	assert.False(t, Nature("debit").Valid())
}

func TestProfileCanSee(t *testing.T) {
	p := Profile{CompanyIDs: []string{"default", "acme"}}
	assert.True(t, p.CanSee("acme"))
	assert.False(t, p.CanSee("other"))
}
