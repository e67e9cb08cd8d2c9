package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kiala-nvumbi/DINK1/internal/ledger"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

const dateFormat = "2006-01-02"

func newEntryCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and manage journal entries",
	}
	cmd.AddCommand(
		newEntryAddCommand(flags),
		newEntryEditCommand(flags),
		newEntryRmCommand(flags),
		newEntryListCommand(flags),
	)
	return cmd
}

// entryFlags are the fields of an entry given on the command line.
type entryFlags struct {
	date        string
	narrative   string
	debits      []string // CODE=AMOUNT
	credits     []string // CODE=AMOUNT
	attachments []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "entry date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.narrative, "narrative", "", "description of the entry")
	cmd.Flags().StringArrayVar(&f.debits, "debit", nil, "debit line as CODE=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&f.credits, "credit", nil, "credit line as CODE=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&f.attachments, "attach", nil, "attachment reference (repeatable)")
}

// lines builds posting lines, debits first.
func (f *entryFlags) lines(book *ledger.Book) ([]model.PostingLine, error) {
	var lines []model.PostingLine
	for _, arg := range f.debits {
		l, err := parseLine(book, arg)
		if err != nil {
			return nil, fmt.Errorf("--debit %s: %w", arg, err)
		}
		lines = append(lines, model.PostingLine{AccountID: l.AccountID, Debit: l.Debit})
	}
	for _, arg := range f.credits {
		l, err := parseLine(book, arg)
		if err != nil {
			return nil, fmt.Errorf("--credit %s: %w", arg, err)
		}
		lines = append(lines, model.PostingLine{AccountID: l.AccountID, Credit: l.Debit})
	}
	return lines, nil
}

// parseLine reads CODE=AMOUNT into a line carrying the amount as Debit.
func parseLine(book *ledger.Book, arg string) (model.PostingLine, error) {
	ref, amount, ok := strings.Cut(arg, "=")
	if !ok {
		return model.PostingLine{}, fmt.Errorf("%w: expected CODE=AMOUNT", model.ErrValidation)
	}
	acct, err := resolveAccount(book, strings.TrimSpace(ref))
	if err != nil {
		return model.PostingLine{}, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return model.PostingLine{}, fmt.Errorf("%w: parsing amount %q", model.ErrValidation, amount)
	}
	return model.PostingLine{AccountID: acct.ID, Debit: d}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing date %q", model.ErrValidation, s)
	}
	return t, nil
}

func newEntryAddCommand(flags *globalFlags) *cobra.Command {
	var ef entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a balanced journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			book, _, err := ws.openBook(cmd.Context())
			if err != nil {
				return err
			}

			date, err := parseDate(ef.date)
			if err != nil {
				return err
			}
			lines, err := ef.lines(book)
			if err != nil {
				return err
			}

			posted, err := book.Post(model.JournalEntry{
				Date:        date,
				Narrative:   ef.narrative,
				Attachments: ef.attachments,
				Lines:       lines,
			})
			if err != nil {
				return err
			}
			if err := ws.saveBook(cmd.Context(), book, "entry: post "+posted.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted entry %s\n", posted.ID)
			return nil
		},
	}

	ef.register(cmd)
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newEntryEditCommand(flags *globalFlags) *cobra.Command {
	var ef entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Amend a journal entry; lines are replaced when any are given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			book, _, err := ws.openBook(cmd.Context())
			if err != nil {
				return err
			}
			entry, ok := book.Entry(args[0])
			if !ok {
				return fmt.Errorf("%w: entry %s", model.ErrNotFound, args[0])
			}

			if cmd.Flags().Changed("date") {
				if entry.Date, err = parseDate(ef.date); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("narrative") {
				entry.Narrative = ef.narrative
			}
			if cmd.Flags().Changed("attach") {
				entry.Attachments = ef.attachments
			}
			if len(ef.debits) > 0 || len(ef.credits) > 0 {
				if entry.Lines, err = ef.lines(book); err != nil {
					return err
				}
			}

			amended, err := book.Amend(entry.ID, entry)
			if err != nil {
				return err
			}
			if err := ws.saveBook(cmd.Context(), book, "entry: amend "+amended.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Amended entry %s\n", amended.ID)
			return nil
		},
	}

	ef.register(cmd)
	return cmd
}

func newEntryRmCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			book, _, err := ws.openBook(cmd.Context())
			if err != nil {
				return err
			}
			if err := book.DeleteEntry(args[0]); err != nil {
				return err
			}
			if err := ws.saveBook(cmd.Context(), book, "entry: delete "+args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}

func newEntryListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the journal entries of --year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			book, _, err := ws.openBook(cmd.Context())
			if err != nil {
				return err
			}
			f, err := ws.formatter()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENTRY\tDATE\tACCOUNT\tDEBIT\tCREDIT\tNARRATIVE")
			for _, e := range book.EntriesForYear(ws.year()) {
				for i, l := range e.Lines {
					code := l.AccountID
					if a, ok := book.Account(l.AccountID); ok {
						code = a.Code
					}
					var debit, credit string
					if !l.Debit.IsZero() {
						debit = f.Amount(l.Debit)
					}
					if !l.Credit.IsZero() {
						credit = f.Amount(l.Credit)
					}
					id, date, narrative := "", "", ""
					if i == 0 {
						id, date, narrative = e.ID, e.Date.Format(dateFormat), e.Narrative
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", id, date, code, debit, credit, narrative)
				}
			}
			return tw.Flush()
		},
	}
}
