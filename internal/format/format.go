// Package format renders ledger amounts for people. Nothing here feeds back
// into computation.
package format

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// DefaultCurrency is the Angolan kwanza.
const DefaultCurrency = "AOA"

// Formatter formats amounts in one currency.
type Formatter struct {
	cur *money.Currency
}

// New returns a Formatter for an ISO 4217 code; "" selects DefaultCurrency.
func New(code string) (*Formatter, error) {
	if code == "" {
		code = DefaultCurrency
	}
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return nil, fmt.Errorf("%w: unknown currency %q", model.ErrValidation, code)
	}
	return &Formatter{cur: cur}, nil
}

// Code returns the currency code.
func (f *Formatter) Code() string {
	return f.cur.Code
}

// Amount formats d with the currency's grouping, decimals and symbol.
func (f *Formatter) Amount(d decimal.Decimal) string {
	minor := d.Round(int32(f.cur.Fraction)).Shift(int32(f.cur.Fraction))
	return f.cur.Formatter().Format(minor.IntPart())
}

// Signed formats a balance the way its account's nature reads naturally:
// credit-normal balances are sign-flipped so a normal balance is positive.
func (f *Formatter) Signed(d decimal.Decimal, nature model.Nature) string {
	return f.Amount(Natural(d, nature))
}

// Natural returns d sign-flipped for credit-normal accounts.
func Natural(d decimal.Decimal, nature model.Nature) decimal.Decimal {
	if nature == model.NatureCredit {
		return d.Neg()
	}
	return d
}

// Currency formats amount in the currency named by code.
func Currency(amount decimal.Decimal, code string) (string, error) {
	f, err := New(code)
	if err != nil {
		return "", err
	}
	return f.Amount(amount), nil
}
