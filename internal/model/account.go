package model

// Nature is the normal side of an account. It only drives presentation
// signs; stored balances are always debit minus credit.
type Nature string

const (
	NatureDebit  Nature = "debit-normal"
	NatureCredit Nature = "credit-normal"
	NatureMixed  Nature = "mixed"
)

// Valid reports whether n is one of the known natures.
func (n Nature) Valid() bool {
	switch n {
	case NatureDebit, NatureCredit, NatureMixed:
		return true
	}
	return false
}

// Account represents a node in the chart of accounts.
type Account struct {
	ID        string
	Code      string // dotted, e.g. "31.1.1"
	Name      string
	Nature    Nature
	ParentID  string // "" = root (account class)
	Protected bool
}

// IsRoot reports whether the account is an account class.
func (a Account) IsRoot() bool {
	return a.ParentID == ""
}
