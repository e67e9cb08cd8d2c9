package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Balances maps an account ID to a signed balance (debit minus credit).
type Balances map[string]decimal.Decimal

// Get returns the balance of accountID, zero when absent.
func (b Balances) Get(accountID string) decimal.Decimal {
	if v, ok := b[accountID]; ok {
		return v
	}
	return decimal.Zero
}

// DirectBalances sums debit minus credit per referenced account. Accounts
// absent from the entries are absent from the result.
func DirectBalances(entries []model.JournalEntry) Balances {
	direct := make(Balances)
	for _, e := range entries {
		for _, l := range e.Lines {
			if l.AccountID == "" {
				continue
			}
			direct[l.AccountID] = direct.Get(l.AccountID).Add(l.Net())
		}
	}
	return direct
}

// Aggregate returns the roll-up balance of every account: its direct
// balance plus the roll-up balances of its children. The caller selects
// the entries (usually one fiscal year). A parent graph with a cycle or a
// dangling parent fails with model.ErrMalformedChart.
func Aggregate(accts []model.Account, entries []model.JournalEntry) (Balances, error) {
	r, err := newRollup(accts, DirectBalances(entries))
	if err != nil {
		return nil, err
	}
	return r.run()
}

const (
	unvisited = iota
	visiting
	done
)

type rollup struct {
	order    []model.Account
	children map[string][]string
	direct   Balances
	state    map[string]int
	result   Balances
}

func newRollup(accts []model.Account, direct Balances) (*rollup, error) {
	order := make([]model.Account, len(accts))
	copy(order, accts)
	accounts.SortByCode(order)

	known := make(map[string]bool, len(order))
	for _, a := range order {
		if known[a.ID] {
			return nil, fmt.Errorf("%w: duplicate account id %q", model.ErrMalformedChart, a.ID)
		}
		known[a.ID] = true
	}

	children := make(map[string][]string, len(order))
	for _, a := range order {
		if a.ParentID == "" {
			continue
		}
		if !known[a.ParentID] {
			return nil, fmt.Errorf("%w: account %s has unknown parent %q", model.ErrMalformedChart, a.Code, a.ParentID)
		}
		children[a.ParentID] = append(children[a.ParentID], a.ID)
	}

	return &rollup{
		order:    order,
		children: children,
		direct:   direct,
		state:    make(map[string]int, len(order)),
		result:   make(Balances, len(order)),
	}, nil
}

func (r *rollup) run() (Balances, error) {
	for _, a := range r.order {
		if _, err := r.visit(a.ID); err != nil {
			return nil, err
		}
	}
	return r.result, nil
}

// visit resolves one account's roll-up, memoising finished accounts. An
// account met again while still being resolved closes a cycle.
func (r *rollup) visit(accountID string) (decimal.Decimal, error) {
	switch r.state[accountID] {
	case done:
		return r.result[accountID], nil
	case visiting:
		return decimal.Zero, fmt.Errorf("%w: cycle through account %q", model.ErrMalformedChart, accountID)
	}

	r.state[accountID] = visiting
	total := r.direct.Get(accountID)
	for _, child := range r.children[accountID] {
		sub, err := r.visit(child)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(sub)
	}
	r.state[accountID] = done
	r.result[accountID] = total
	return total, nil
}
