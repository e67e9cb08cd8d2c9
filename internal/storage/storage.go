// Package storage persists each company's accounts and journal. Both
// backends replace a company's data wholesale on save.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kiala-nvumbi/DINK1/internal/config"
	"github.com/kiala-nvumbi/DINK1/internal/ledger"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Repository is a ledger.Repository holding resources until closed.
type Repository interface {
	ledger.Repository
	Close() error
}

// Open returns the repository selected by backend. path is the data
// directory for csv and the database file for sqlite.
func Open(ctx context.Context, backend, path string) (Repository, error) {
	switch backend {
	case "", config.BackendCSV:
		return NewFileRepository(path), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", model.ErrValidation, backend)
	}
}

// checkCompanyID rejects ids that cannot name a directory of their own.
func checkCompanyID(companyID string) error {
	if companyID == "" || companyID == "." || companyID == ".." ||
		strings.ContainsAny(companyID, `/\`) || filepath.Base(companyID) != companyID {
		return fmt.Errorf("%w: invalid company id %q", model.ErrValidation, companyID)
	}
	return nil
}
