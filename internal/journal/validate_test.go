package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func debit(account, amount string) model.PostingLine {
	return model.PostingLine{AccountID: account, Debit: dec(amount)}
}

func credit(account, amount string) model.PostingLine {
	return model.PostingLine{AccountID: account, Credit: dec(amount)}
}

func TestValidate_Balanced(t *testing.T) {
	assert.NoError(t, Validate([]model.PostingLine{debit("45.1", "100.00"), credit("61.1", "100.00")}))
}

func TestValidate_SplitCredit(t *testing.T) {
	lines := []model.PostingLine{debit("A", "500"), credit("B", "300"), credit("C", "200")}
	assert.NoError(t, Validate(lines))
}

func TestValidate_Unbalanced(t *testing.T) {
	err := Validate([]model.PostingLine{debit("A", "500"), credit("B", "400")})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnbalancedEntry)
	assert.Contains(t, err.Error(), "debits (500.00) != credits (400.00)")
}

func TestValidate_Tolerance(t *testing.T) {
	assert.NoError(t, Validate([]model.PostingLine{debit("A", "100.00"), credit("B", "100")}))
	assert.ErrorIs(t, Validate([]model.PostingLine{debit("A", "100.01"), credit("B", "100")}), model.ErrUnbalancedEntry)
}

func TestValidate_SubCentAmount(t *testing.T) {
	err := Validate([]model.PostingLine{debit("A", "0.004"), credit("B", "0.004")})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, err.Error(), "line 1 debit 0.004 has more than 2 decimal places")

	err = Validate([]model.PostingLine{debit("A", "10"), credit("B", "9.995"), credit("C", "0.005")})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, err.Error(), "line 2 credit")

	assert.NoError(t, Validate([]model.PostingLine{debit("A", "12.5000"), credit("B", "12.50")}))
}

func TestValidate_AllZero(t *testing.T) {
	err := Validate([]model.PostingLine{{AccountID: "A"}, {AccountID: "B"}})
	assert.ErrorIs(t, err, model.ErrUnbalancedEntry)
}

func TestValidate_CreditOnly(t *testing.T) {
	err := Validate([]model.PostingLine{credit("A", "10"), credit("B", "10")})
	assert.ErrorIs(t, err, model.ErrUnbalancedEntry)
}

func TestValidate_TooFewAccounts(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.PostingLine
	}{
		{"no lines", nil},
		{"one line", []model.PostingLine{debit("A", "10")}},
		{"one line plus blank", []model.PostingLine{debit("A", "0"), {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.lines), model.ErrValidation)
		})
	}
}

func TestValidate_AmountWithoutAccount(t *testing.T) {
	lines := []model.PostingLine{debit("A", "10"), credit("B", "10"), {Debit: dec("5")}}
	assert.ErrorIs(t, Validate(lines), model.ErrValidation)
}

func TestValidate_NegativeAmount(t *testing.T) {
	lines := []model.PostingLine{debit("A", "-10"), credit("B", "-10")}
	assert.ErrorIs(t, Validate(lines), model.ErrValidation)
}

func TestValidate_BlankLinesIgnored(t *testing.T) {
	lines := []model.PostingLine{debit("A", "10"), {}, credit("B", "10"), {}}
	assert.NoError(t, Validate(lines))
}
