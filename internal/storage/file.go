package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/journal"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// File names inside a company directory.
const (
	AccountsFile = "accounts.csv"
	JournalFile  = "journal.csv"
)

// FileRepository keeps one directory of CSV files per company:
// <root>/<company>/accounts.csv and <root>/<company>/journal.csv.
type FileRepository struct {
	root string
}

// NewFileRepository returns a repository rooted at root.
func NewFileRepository(root string) *FileRepository {
	return &FileRepository{root: root}
}

// Dir returns the directory holding a company's files.
func (r *FileRepository) Dir(companyID string) string {
	return filepath.Join(r.root, companyID)
}

// Load reads a company's data. A company with no files loads empty.
func (r *FileRepository) Load(_ context.Context, companyID string) (model.Ledger, error) {
	if err := checkCompanyID(companyID); err != nil {
		return model.Ledger{}, err
	}
	dir := r.Dir(companyID)

	var data model.Ledger
	err := readFile(filepath.Join(dir, AccountsFile), func(rd io.Reader) error {
		accts, err := accounts.ReadAccounts(rd)
		data.Accounts = accts
		return err
	})
	if err != nil {
		return model.Ledger{}, err
	}

	err = readFile(filepath.Join(dir, JournalFile), func(rd io.Reader) error {
		entries, err := journal.ReadEntries(rd)
		data.Entries = entries
		return err
	})
	if err != nil {
		return model.Ledger{}, err
	}
	return data, nil
}

// Save writes a company's data, replacing both files.
func (r *FileRepository) Save(_ context.Context, companyID string, data model.Ledger) error {
	if err := checkCompanyID(companyID); err != nil {
		return err
	}
	dir := r.Dir(companyID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	err := writeFile(filepath.Join(dir, AccountsFile), func(w io.Writer) error {
		return accounts.WriteAccounts(w, data.Accounts)
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, JournalFile), func(w io.Writer) error {
		return journal.WriteEntries(w, data.Entries)
	})
}

// Close is a no-op.
func (r *FileRepository) Close() error {
	return nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := read(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// writeFile writes through a temporary file so a failed save never leaves
// a truncated CSV behind.
func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
