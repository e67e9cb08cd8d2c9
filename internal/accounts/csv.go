package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Header is the CSV header for accounts.csv.
var Header = []string{"account_id", "code", "name", "nature", "parent_id", "protected"}

const (
	numFields    = 6
	colID        = 0
	colCode      = 1
	colName      = 2
	colNature    = 3
	colParent    = 4
	colProtected = 5
)

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colNature] = string(acct.Nature)
	row[colParent] = acct.ParentID
	if acct.Protected {
		row[colProtected] = "true"
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	nature := model.Nature(record[colNature])
	if !nature.Valid() {
		return model.Account{}, fmt.Errorf("parsing nature %q: unknown nature", record[colNature])
	}

	var protected bool
	if record[colProtected] != "" {
		var err error
		protected, err = strconv.ParseBool(record[colProtected])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing protected %q: %w", record[colProtected], err)
		}
	}

	return model.Account{
		ID:        record[colID],
		Code:      record[colCode],
		Name:      record[colName],
		Nature:    nature,
		ParentID:  record[colParent],
		Protected: protected,
	}, nil
}
