package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCompanyCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
	}
	cmd.AddCommand(
		newCompanyAddCommand(flags),
		newCompanyListCommand(flags),
		newCompanyUseCommand(flags),
	)
	return cmd
}

func newCompanyAddCommand(flags *globalFlags) *cobra.Command {
	var nif string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a company and grant it to the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			c, err := ws.registry.AddCompany(args[0], nif, ws.profileID())
			if err != nil {
				return err
			}
			if err := ws.saveTenants("company: add " + c.Name); err != nil {
				return err
			}

			// Seed its chart so the company has files of its own.
			book, err := ws.svc.Open(cmd.Context(), c.ID)
			if err != nil {
				return err
			}
			if err := ws.saveBook(cmd.Context(), book, "company: seed chart for "+c.Name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added company %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&nif, "nif", "", "tax identification number")
	return cmd
}

func newCompanyListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the companies visible to the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			companies, err := ws.registry.VisibleCompanies(ws.profileID())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tNAME\tNIF")
			for _, c := range companies {
				marker := ""
				if c.ID == ws.companyID() {
					marker = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, c.ID, c.Name, c.NIF)
			}
			return tw.Flush()
		},
	}
}

func newCompanyUseCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a company the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			ws.flags.company = args[0]
			c, err := ws.company()
			if err != nil {
				return err
			}
			ws.cfg.Ledger.ActiveCompany = c.ID
			if err := ws.saveConfig("company: use " + c.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active company is now %s\n", c.Name)
			return nil
		},
	}
}
