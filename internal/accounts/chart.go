package accounts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kiala-nvumbi/DINK1/internal/id"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Chart is an in-memory chart of accounts for one company.
type Chart struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewChart creates a Chart from a slice of accounts. The slice is copied.
func NewChart(accounts []model.Account) *Chart {
	c := &Chart{
		accounts: slices.Clone(accounts),
		byID:     make(map[string]model.Account, len(accounts)),
	}
	for _, a := range accounts {
		c.byID[a.ID] = a
	}
	return c
}

// AddAccountParams holds parameters for creating an account.
type AddAccountParams struct {
	Code     string
	Name     string
	ParentID string       // "" creates a root
	Nature   model.Nature // defaults to mixed
}

// AddAccount appends a new account. Codes must be unique within the chart;
// whether a child's code extends its parent's code is not checked.
func (c *Chart) AddAccount(params AddAccountParams) (model.Account, error) {
	code := strings.TrimSpace(params.Code)
	name := strings.TrimSpace(params.Name)
	if code == "" {
		return model.Account{}, fmt.Errorf("%w: account code is required", model.ErrValidation)
	}
	if name == "" {
		return model.Account{}, fmt.Errorf("%w: account name is required", model.ErrValidation)
	}
	if params.ParentID != "" && !c.Exists(params.ParentID) {
		return model.Account{}, fmt.Errorf("%w: unknown parent account %q", model.ErrValidation, params.ParentID)
	}
	if _, ok := c.ByCode(code); ok {
		return model.Account{}, fmt.Errorf("%w: account code %q already exists", model.ErrValidation, code)
	}

	nature := params.Nature
	if nature == "" {
		nature = model.NatureMixed
	}
	if !nature.Valid() {
		return model.Account{}, fmt.Errorf("%w: unknown nature %q", model.ErrValidation, nature)
	}

	acct := model.Account{
		ID:       id.New(),
		Code:     code,
		Name:     name,
		Nature:   nature,
		ParentID: params.ParentID,
	}
	c.accounts = append(c.accounts, acct)
	c.byID[acct.ID] = acct
	return acct, nil
}

// RemoveAccount deletes an account. Protected accounts and accounts with
// children are refused.
func (c *Chart) RemoveAccount(accountID string) error {
	acct, ok := c.byID[accountID]
	if !ok {
		return fmt.Errorf("%w: account %q", model.ErrNotFound, accountID)
	}
	if acct.Protected {
		return fmt.Errorf("%w: %s %s cannot be deleted", model.ErrProtectedAccount, acct.Code, acct.Name)
	}
	if children := c.ChildrenOf(accountID); len(children) > 0 {
		return fmt.Errorf("%w: %s has %d sub-accounts", model.ErrAccountInUse, acct.Code, len(children))
	}

	c.accounts = slices.DeleteFunc(c.accounts, func(a model.Account) bool { return a.ID == accountID })
	delete(c.byID, accountID)
	return nil
}

// All returns all accounts in insertion order.
func (c *Chart) All() []model.Account {
	return slices.Clone(c.accounts)
}

// Len returns the number of accounts.
func (c *Chart) Len() int {
	return len(c.accounts)
}

// Get returns an account by ID.
func (c *Chart) Get(accountID string) (model.Account, bool) {
	a, ok := c.byID[accountID]
	return a, ok
}

// Exists reports whether an account ID exists.
func (c *Chart) Exists(accountID string) bool {
	_, ok := c.byID[accountID]
	return ok
}

// ByCode returns the account carrying code.
func (c *Chart) ByCode(code string) (model.Account, bool) {
	for _, a := range c.accounts {
		if a.Code == code {
			return a, true
		}
	}
	return model.Account{}, false
}

// ChildrenOf returns the direct children of an account, ordered by code.
func (c *Chart) ChildrenOf(accountID string) []model.Account {
	var children []model.Account
	for _, a := range c.accounts {
		if a.ParentID == accountID && accountID != "" {
			children = append(children, a)
		}
	}
	SortByCode(children)
	return children
}

// SortedByCode returns all accounts in natural code order.
func (c *Chart) SortedByCode() []model.Account {
	sorted := c.All()
	SortByCode(sorted)
	return sorted
}

// SortByCode sorts accounts in place in natural code order. Ties on code
// are broken by ID so the order is total.
func SortByCode(accounts []model.Account) {
	slices.SortStableFunc(accounts, func(a, b model.Account) int {
		if c := CompareCodes(a.Code, b.Code); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
