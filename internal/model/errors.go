package model

import "errors"

var (
	// ErrValidation reports a missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrUnbalancedEntry reports an entry whose debits and credits differ.
	ErrUnbalancedEntry = errors.New("unbalanced entry")
	// ErrProtectedAccount reports an attempt to delete a seeded account class.
	ErrProtectedAccount = errors.New("protected account")
	// ErrAccountInUse reports an attempt to delete an account that still has
	// children or postings.
	ErrAccountInUse = errors.New("account in use")
	// ErrMalformedChart reports a cyclic or dangling parent graph.
	ErrMalformedChart = errors.New("malformed chart")
	// ErrNotFound reports an unknown id.
	ErrNotFound = errors.New("not found")
)
