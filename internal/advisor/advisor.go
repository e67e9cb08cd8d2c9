// Package advisor produces short advisory text from a financial summary.
// Advice is optional: callers go through a Guard, which never fails and
// never touches ledger state.
package advisor

import "context"

// FallbackMessage is shown whenever advice cannot be produced.
const FallbackMessage = "Financial advice is unavailable at the moment."

// Advisor turns a plain-text financial summary into advice.
type Advisor interface {
	Advise(ctx context.Context, summary string) (string, error)
}

// Func adapts a function to the Advisor interface.
type Func func(ctx context.Context, summary string) (string, error)

// Advise calls f.
func (f Func) Advise(ctx context.Context, summary string) (string, error) {
	return f(ctx, summary)
}
