package reports

import (
	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Ratio is a derived scalar that is undefined when its denominator is zero.
type Ratio struct {
	Value      decimal.Decimal
	Applicable bool
}

// String renders the ratio with two decimals, or "---" when not applicable.
func (r Ratio) String() string {
	if !r.Applicable {
		return "---"
	}
	return r.Value.StringFixed(2)
}

// ratio divides num by den, not applicable when den is within tolerance of zero.
func ratio(num, den decimal.Decimal) Ratio {
	if model.IsZero(den) {
		return Ratio{}
	}
	return Ratio{Value: num.Div(den), Applicable: true}
}

// Ratios are the liquidity and profitability indicators of one year.
type Ratios struct {
	CompanyID          string
	Year               int
	CurrentAssets      decimal.Decimal // classes 2, 31 and 4
	CurrentLiabilities decimal.Decimal // |32| + |34|
	Liquidity          Ratio
	NetMargin          Ratio // net result / revenue, negative in a loss year
	Treasury           decimal.Decimal
}

// NewRatios projects the ratios.
func NewRatios(v *View) Ratios {
	current := v.sum(CodeInventories, CodeCustomers, CodeCash)
	liabilities := v.absSum(CodeSuppliers, CodeState)
	income := NewIncomeStatement(v)

	liquidity := ratio(current, liabilities)
	liquidity.Value = liquidity.Value.Abs()

	return Ratios{
		CompanyID:          v.CompanyID,
		Year:               v.Year,
		CurrentAssets:      current,
		CurrentLiabilities: liabilities,
		Liquidity:          liquidity,
		NetMargin:          ratio(income.NetResult, income.Revenue),
		Treasury:           v.Code(CodeCash),
	}
}
