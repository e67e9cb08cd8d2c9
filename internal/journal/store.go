package journal

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kiala-nvumbi/DINK1/internal/id"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

// Store is the ordered collection of one company's journal entries.
// Entries are kept in append order; Replace keeps an entry's position.
type Store struct {
	entries []model.JournalEntry
}

// NewStore creates a Store over already-admitted entries. Fiscal years are
// re-derived from the dates.
func NewStore(entries []model.JournalEntry) *Store {
	s := &Store{entries: make([]model.JournalEntry, 0, len(entries))}
	for _, e := range entries {
		e = cloneEntry(e)
		e.FiscalYear = e.Date.Year()
		s.entries = append(s.entries, e)
	}
	return s
}

// Append validates entry and adds it to the end of the journal. The stored
// entry, with its assigned IDs, is returned.
func (s *Store) Append(entry model.JournalEntry) (model.JournalEntry, error) {
	admitted, err := admit(entry)
	if err != nil {
		return model.JournalEntry{}, err
	}

	year, month := admitted.Date.Year(), int(admitted.Date.Month())
	admitted.ID = id.FormatEntryID(year, month, s.nextSeq(year, month))
	assignLineIDs(&admitted)

	s.entries = append(s.entries, admitted)
	return cloneEntry(admitted), nil
}

// Replace validates entry and substitutes it for the stored entry entryID.
// The entry keeps its ID and position.
func (s *Store) Replace(entryID string, entry model.JournalEntry) (model.JournalEntry, error) {
	i := s.index(entryID)
	if i < 0 {
		return model.JournalEntry{}, fmt.Errorf("%w: entry %q", model.ErrNotFound, entryID)
	}

	admitted, err := admit(entry)
	if err != nil {
		return model.JournalEntry{}, err
	}
	admitted.ID = entryID
	assignLineIDs(&admitted)

	s.entries[i] = admitted
	return cloneEntry(admitted), nil
}

// Remove deletes the entry entryID.
func (s *Store) Remove(entryID string) error {
	i := s.index(entryID)
	if i < 0 {
		return fmt.Errorf("%w: entry %q", model.ErrNotFound, entryID)
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// Get returns an entry by ID.
func (s *Store) Get(entryID string) (model.JournalEntry, bool) {
	i := s.index(entryID)
	if i < 0 {
		return model.JournalEntry{}, false
	}
	return cloneEntry(s.entries[i]), true
}

// All returns every entry in store order.
func (s *Store) All() []model.JournalEntry {
	out := make([]model.JournalEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// EntriesForYear returns the entries of one fiscal year in store order.
func (s *Store) EntriesForYear(year int) []model.JournalEntry {
	var out []model.JournalEntry
	for _, e := range s.entries {
		if e.FiscalYear == year {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// Years returns the distinct fiscal years present, ascending.
func (s *Store) Years() []int {
	var years []int
	for _, e := range s.entries {
		if !slices.Contains(years, e.FiscalYear) {
			years = append(years, e.FiscalYear)
		}
	}
	slices.Sort(years)
	return years
}

// References reports whether any line in any year posts to accountID.
func (s *Store) References(accountID string) bool {
	for _, e := range s.entries {
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				return true
			}
		}
	}
	return false
}

func (s *Store) index(entryID string) int {
	return slices.IndexFunc(s.entries, func(e model.JournalEntry) bool { return e.ID == entryID })
}

// nextSeq returns the next available sequence number for a month.
func (s *Store) nextSeq(year, month int) int {
	maxSeq := 0
	for _, e := range s.entries {
		y, m, seq, err := id.ParseEntryID(e.ID)
		if err != nil || y != year || m != month {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return maxSeq + 1
}

// admit validates a candidate entry and returns the copy to be stored.
func admit(entry model.JournalEntry) (model.JournalEntry, error) {
	if entry.Date.IsZero() {
		return model.JournalEntry{}, fmt.Errorf("%w: entry date is required", model.ErrValidation)
	}
	if err := Validate(entry.Lines); err != nil {
		return model.JournalEntry{}, err
	}

	admitted := cloneEntry(entry)
	admitted.Narrative = strings.TrimSpace(admitted.Narrative)
	admitted.FiscalYear = admitted.Date.Year()
	admitted.Lines = slices.DeleteFunc(admitted.Lines, model.PostingLine.IsBlank)
	return admitted, nil
}

func assignLineIDs(e *model.JournalEntry) {
	for i := range e.Lines {
		e.Lines[i].ID = id.FormatLineID(e.ID, i)
	}
}

func cloneEntry(e model.JournalEntry) model.JournalEntry {
	e.Lines = slices.Clone(e.Lines)
	e.Attachments = slices.Clone(e.Attachments)
	return e
}
