package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiala-nvumbi/DINK1/internal/format"
	"github.com/kiala-nvumbi/DINK1/internal/reports"
)

func newReportCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements for --year",
	}
	cmd.AddCommand(
		newReportSubcommand(flags, "trial", "Trial balance of every account", printTrialBalance),
		newReportSubcommand(flags, "balance", "Balance sheet at 31 December", printBalanceSheet),
		newReportSubcommand(flags, "income", "Income statement", printIncomeStatement),
		newReportSubcommand(flags, "ratios", "Liquidity, margin and treasury", printRatios),
	)
	return cmd
}

type reportPrinter func(w io.Writer, f *format.Formatter, s reports.Summary) error

func newReportSubcommand(flags *globalFlags, use, short string, render reportPrinter) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			summary, err := ws.summary(cmd.Context())
			if err != nil {
				return err
			}
			f, err := ws.formatter()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), f, summary)
		},
	}
}

// summary computes every projection of the active company for --year.
func (w *workspace) summary(ctx context.Context) (reports.Summary, error) {
	book, company, err := w.openBook(ctx)
	if err != nil {
		return reports.Summary{}, err
	}
	snap, err := book.Snapshot(w.year())
	if err != nil {
		return reports.Summary{}, err
	}
	return reports.NewSummary(reports.NewView(book.Accounts(), snap), company.Name), nil
}

func printHeading(w io.Writer, title string, s reports.Summary) {
	fmt.Fprintf(w, "%s, %s, %d\n\n", title, s.CompanyName, s.Year)
}

func printTrialBalance(w io.Writer, f *format.Formatter, s reports.Summary) error {
	printHeading(w, "Trial balance", s)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CODE\tNAME\tBALANCE\t")
	for _, row := range s.Trial.Rows {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t\n",
			strings.Repeat("  ", row.Depth), row.Code, row.Name, f.Amount(row.Balance))
	}
	fmt.Fprintf(tw, "\tNet\t%s\t\n", f.Amount(s.Trial.Net))
	return tw.Flush()
}

func printLines(tw io.Writer, f *format.Formatter, lines []reports.Line) {
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t\n", l.Label, f.Amount(l.Amount))
	}
}

func printBalanceSheet(w io.Writer, f *format.Formatter, s reports.Summary) error {
	bs := s.BalanceSheet
	fmt.Fprintf(w, "Balance sheet, %s, as of %s\n\n", s.CompanyName, bs.AsOf.Format(dateFormat))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ASSETS\t\t")
	printLines(tw, f, bs.Assets)
	fmt.Fprintf(tw, "Total assets\t%s\t\n", f.Amount(bs.TotalAssets))
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "LIABILITIES AND EQUITY\t\t")
	printLines(tw, f, bs.LiabilitiesEquity)
	fmt.Fprintf(tw, "Total liabilities and equity\t%s\t\n", f.Amount(bs.TotalLiabilitiesEquity))
	return tw.Flush()
}

func printIncomeStatement(w io.Writer, f *format.Formatter, s reports.Summary) error {
	is := s.Income
	printHeading(w, "Income statement", s)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Revenue\t%s\t\n", f.Amount(is.Revenue))
	fmt.Fprintf(tw, "Expenses\t%s\t\n", f.Amount(is.Expenses))
	fmt.Fprintf(tw, "  of which staff costs\t%s\t\n", f.Amount(is.StaffCosts))
	fmt.Fprintf(tw, "Net result\t%s\t\n", f.Amount(is.NetResult))
	return tw.Flush()
}

func printRatios(w io.Writer, f *format.Formatter, s reports.Summary) error {
	r := s.Ratios
	printHeading(w, "Ratios", s)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Current assets\t%s\t\n", f.Amount(r.CurrentAssets))
	fmt.Fprintf(tw, "Current liabilities\t%s\t\n", f.Amount(r.CurrentLiabilities))
	fmt.Fprintf(tw, "Liquidity\t%s\t\n", r.Liquidity)
	fmt.Fprintf(tw, "Net margin\t%s\t\n", r.NetMargin)
	fmt.Fprintf(tw, "Treasury\t%s\t\n", f.Amount(r.Treasury))
	return tw.Flush()
}
