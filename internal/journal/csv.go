package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiala-nvumbi/DINK1/internal/id"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Header is the CSV header for journal.csv. Each row is one posting line;
// rows of an entry are contiguous.
var Header = []string{"entry_id", "date", "line_id", "account_id", "narrative", "debit", "credit", "attachments"}

const (
	numFields      = 8
	dateFormat     = "2006-01-02"
	colEntryID     = 0
	colDate        = 1
	colLineID      = 2
	colAcctID      = 3
	colNarrative   = 4
	colDebit       = 5
	colCredit      = 6
	colAttachments = 7

	// attachmentSep separates attachment references within one cell.
	attachmentSep = "\n"
)

// ReadEntries reads all entries from a journal.csv reader.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		entryID := rec[colEntryID]
		if entryID == "" {
			return nil, fmt.Errorf("row %d: empty entry_id", i+2)
		}

		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if n := len(entries); n > 0 && entries[n-1].ID == entryID {
			entries[n-1].Lines = append(entries[n-1].Lines, line)
			continue
		}

		date, err := time.Parse(dateFormat, rec[colDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[colDate], err)
		}
		var attachments []string
		if rec[colAttachments] != "" {
			attachments = strings.Split(rec[colAttachments], attachmentSep)
		}
		entries = append(entries, model.JournalEntry{
			ID:          entryID,
			Date:        date,
			FiscalYear:  date.Year(),
			Narrative:   rec[colNarrative],
			Attachments: attachments,
			Lines:       []model.PostingLine{line},
		})
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, e := range entries {
		for i, line := range e.Lines {
			if err := cw.Write(MarshalLine(e, i, line)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts the i-th line of entry to a CSV row. Attachments are
// written on the first row of the entry only.
func MarshalLine(entry model.JournalEntry, i int, line model.PostingLine) []string {
	row := make([]string, numFields)
	row[colEntryID] = entry.ID
	row[colDate] = entry.Date.Format(dateFormat)
	row[colLineID] = line.ID
	if row[colLineID] == "" {
		row[colLineID] = id.FormatLineID(entry.ID, i)
	}
	row[colAcctID] = line.AccountID
	row[colNarrative] = entry.Narrative

	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.StringFixed(2)
	}

	if i == 0 {
		row[colAttachments] = strings.Join(entry.Attachments, attachmentSep)
	}
	return row
}

// UnmarshalLine converts a CSV row to a PostingLine.
func UnmarshalLine(record []string) (model.PostingLine, error) {
	if len(record) != numFields {
		return model.PostingLine{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var debit, credit decimal.Decimal
	var err error

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.PostingLine{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.PostingLine{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.PostingLine{
		ID:        record[colLineID],
		AccountID: record[colAcctID],
		Debit:     debit,
		Credit:    credit,
	}, nil
}
