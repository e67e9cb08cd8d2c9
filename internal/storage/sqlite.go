package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	company_id TEXT NOT NULL,
	position   INTEGER NOT NULL,
	id         TEXT NOT NULL,
	code       TEXT NOT NULL,
	name       TEXT NOT NULL,
	nature     TEXT NOT NULL,
	parent_id  TEXT NOT NULL DEFAULT '',
	protected  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (company_id, id)
);

CREATE TABLE IF NOT EXISTS entries (
	company_id  TEXT NOT NULL,
	position    INTEGER NOT NULL,
	id          TEXT NOT NULL,
	date        TEXT NOT NULL,
	narrative   TEXT NOT NULL DEFAULT '',
	attachments TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (company_id, id)
);

CREATE TABLE IF NOT EXISTS posting_lines (
	company_id TEXT NOT NULL,
	entry_id   TEXT NOT NULL,
	position   INTEGER NOT NULL,
	id         TEXT NOT NULL,
	account_id TEXT NOT NULL,
	debit      TEXT NOT NULL,
	credit     TEXT NOT NULL,
	PRIMARY KEY (company_id, entry_id, position)
);

CREATE INDEX IF NOT EXISTS idx_posting_lines_account ON posting_lines(company_id, account_id);
`

const (
	sqlDateFormat = "2006-01-02"
	attachmentSep = "\n"
)

// SQLiteRepository keeps every company in one SQLite database. Amounts are
// stored as decimal text so they round-trip exactly.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and
	// writes are serialised anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Load reads a company's data in saved order.
func (r *SQLiteRepository) Load(ctx context.Context, companyID string) (model.Ledger, error) {
	if companyID == "" {
		return model.Ledger{}, fmt.Errorf("%w: empty company id", model.ErrValidation)
	}
	accts, err := r.loadAccounts(ctx, companyID)
	if err != nil {
		return model.Ledger{}, err
	}
	entries, err := r.loadEntries(ctx, companyID)
	if err != nil {
		return model.Ledger{}, err
	}
	return model.Ledger{Accounts: accts, Entries: entries}, nil
}

func (r *SQLiteRepository) loadAccounts(ctx context.Context, companyID string) ([]model.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, name, nature, parent_id, protected FROM accounts WHERE company_id = ? ORDER BY position`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		var nature string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &nature, &a.ParentID, &a.Protected); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Nature = model.Nature(nature)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadEntries(ctx context.Context, companyID string) ([]model.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, narrative, attachments FROM entries WHERE company_id = ? ORDER BY position`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var out []model.JournalEntry
	index := make(map[string]int)
	for rows.Next() {
		var e model.JournalEntry
		var date, attachments string
		if err := rows.Scan(&e.ID, &date, &e.Narrative, &attachments); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Date, err = time.Parse(sqlDateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("entry %s: parsing date %q: %w", e.ID, date, err)
		}
		e.FiscalYear = e.Date.Year()
		if attachments != "" {
			e.Attachments = strings.Split(attachments, attachmentSep)
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := r.db.QueryContext(ctx,
		`SELECT entry_id, id, account_id, debit, credit FROM posting_lines WHERE company_id = ? ORDER BY entry_id, position`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("querying posting lines: %w", err)
	}
	defer lines.Close()

	for lines.Next() {
		var entryID, debit, credit string
		var l model.PostingLine
		if err := lines.Scan(&entryID, &l.ID, &l.AccountID, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scanning posting line: %w", err)
		}
		if l.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("line %s: parsing debit %q: %w", l.ID, debit, err)
		}
		if l.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("line %s: parsing credit %q: %w", l.ID, credit, err)
		}
		i, ok := index[entryID]
		if !ok {
			return nil, fmt.Errorf("line %s: unknown entry %s", l.ID, entryID)
		}
		out[i].Lines = append(out[i].Lines, l)
	}
	return out, lines.Err()
}

// Save replaces a company's data in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, companyID string, data model.Ledger) error {
	if companyID == "" {
		return fmt.Errorf("%w: empty company id", model.ErrValidation)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"posting_lines", "entries", "accounts"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE company_id = ?`, companyID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, a := range data.Accounts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (company_id, position, id, code, name, nature, parent_id, protected) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			companyID, i, a.ID, a.Code, a.Name, string(a.Nature), a.ParentID, a.Protected)
		if err != nil {
			return fmt.Errorf("inserting account %s: %w", a.ID, err)
		}
	}

	for i, e := range data.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entries (company_id, position, id, date, narrative, attachments) VALUES (?, ?, ?, ?, ?, ?)`,
			companyID, i, e.ID, e.Date.Format(sqlDateFormat), e.Narrative, strings.Join(e.Attachments, attachmentSep))
		if err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
		for j, l := range e.Lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO posting_lines (company_id, entry_id, position, id, account_id, debit, credit) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				companyID, e.ID, j, l.ID, l.AccountID, l.Debit.String(), l.Credit.String())
			if err != nil {
				return fmt.Errorf("inserting line %s: %w", l.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
