package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// minLines is the minimum number of lines that must reference an account.
const minLines = 2

// maxPlaces is the precision the journal file stores amounts at.
const maxPlaces = 2

// Validate enforces the double-entry invariant on a candidate entry's lines.
// It returns an error wrapping model.ErrValidation for malformed lines and
// model.ErrUnbalancedEntry when debits and credits do not net to zero.
func Validate(lines []model.PostingLine) error {
	referenced := 0
	debit, credit := decimal.Zero, decimal.Zero
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", model.ErrValidation, i+1)
		}
		if tooPrecise(l.Debit) {
			return fmt.Errorf("%w: line %d debit %s has more than %d decimal places", model.ErrValidation, i+1, l.Debit, maxPlaces)
		}
		if tooPrecise(l.Credit) {
			return fmt.Errorf("%w: line %d credit %s has more than %d decimal places", model.ErrValidation, i+1, l.Credit, maxPlaces)
		}
		if l.AccountID == "" {
			if !l.Debit.IsZero() || !l.Credit.IsZero() {
				return fmt.Errorf("%w: line %d has an amount but no account", model.ErrValidation, i+1)
			}
			continue
		}
		referenced++
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	if referenced < minLines {
		return fmt.Errorf("%w: entry needs at least %d lines with an account, got %d", model.ErrValidation, minLines, referenced)
	}
	if !debit.IsPositive() {
		return fmt.Errorf("%w: total debit must be positive", model.ErrUnbalancedEntry)
	}
	if !model.NearlyEqual(debit, credit) {
		return fmt.Errorf("%w: debits (%s) != credits (%s)", model.ErrUnbalancedEntry, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

func tooPrecise(d decimal.Decimal) bool {
	return !d.Equal(d.Truncate(maxPlaces))
}
