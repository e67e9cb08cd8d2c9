package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
	"github.com/kiala-nvumbi/DINK1/internal/format"
	"github.com/kiala-nvumbi/DINK1/internal/ledger"
	"github.com/kiala-nvumbi/DINK1/internal/model"
)

func newAccountCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	cmd.AddCommand(
		newAccountAddCommand(flags),
		newAccountRmCommand(flags),
		newAccountListCommand(flags),
	)
	return cmd
}

// resolveAccount finds an account by code, then by ID.
func resolveAccount(book *ledger.Book, ref string) (model.Account, error) {
	if a, ok := book.AccountByCode(ref); ok {
		return a, nil
	}
	if a, ok := book.Account(ref); ok {
		return a, nil
	}
	return model.Account{}, fmt.Errorf("%w: account %s", model.ErrNotFound, ref)
}

func newAccountAddCommand(flags *globalFlags) *cobra.Command {
	var parent, nature string

	cmd := &cobra.Command{
		Use:   "add <code> <name>",
		Short: "Add an account under a parent",
		Args:  cobra.ExactArgs(2),
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

			params := accounts.AddAccountParams{
				Code:   args[0],
				Name:   args[1],
				Nature: model.Nature(nature),
			}
			if parent != "" {
				p, err := resolveAccount(book, parent)
				if err != nil {
					return fmt.Errorf("parent: %w", err)
				}
				params.ParentID = p.ID
			}

			acct, err := book.AddAccount(params)
			if err != nil {
				return err
			}
			if err := ws.saveBook(cmd.Context(), book, fmt.Sprintf("account: add %s %s", acct.Code, acct.Name)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %s %s\n", acct.Code, acct.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "parent account code")
	cmd.Flags().StringVar(&nature, "nature", string(model.NatureMixed), "debit-normal, credit-normal or mixed")
	return cmd
}

func newAccountRmCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <code>",
		Short: "Remove an unused account",
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
			acct, err := resolveAccount(book, args[0])
			if err != nil {
				return err
			}
			if err := book.RemoveAccount(acct.ID); err != nil {
				return err
			}
			if err := ws.saveBook(cmd.Context(), book, "account: remove "+acct.Code); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s %s\n", acct.Code, acct.Name)
			return nil
		},
	}
}

func newAccountListCommand(flags *globalFlags) *cobra.Command {
	var balances bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
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

			var snap *ledger.Snapshot
			var f *format.Formatter
			if balances {
				if snap, err = book.Snapshot(ws.year()); err != nil {
					return err
				}
				if f, err = ws.formatter(); err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if balances {
				fmt.Fprintln(tw, "CODE\tNAME\tNATURE\tBALANCE")
			} else {
				fmt.Fprintln(tw, "CODE\tNAME\tNATURE")
			}
			for _, a := range book.Accounts() {
				indent := strings.Repeat("  ", book.Depth(a.ID))
				if balances {
					fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n", indent, a.Code, a.Name, a.Nature, f.Signed(snap.Balance(a.ID), a.Nature))
				} else {
					fmt.Fprintf(tw, "%s%s\t%s\t%s\n", indent, a.Code, a.Name, a.Nature)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&balances, "balances", false, "show roll-up balances for --year")
	return cmd
}
