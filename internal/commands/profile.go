package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kiala-nvumbi/DINK1/internal/tenants"
)

func newProfileCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage operator profiles",
	}
	cmd.AddCommand(
		newProfileAddCommand(flags),
		newProfileListCommand(flags),
		newProfileGrantCommand(flags),
	)
	return cmd
}

func newProfileAddCommand(flags *globalFlags) *cobra.Command {
	var params tenants.AddProfileParams

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Register a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			params.Username = args[0]
			p, err := ws.registry.AddProfile(params)
			if err != nil {
				return err
			}
			if err := ws.saveTenants("profile: add " + p.Username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added profile %s (%s)\n", p.Username, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "full name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&params.UserCode, "code", "", "user code")
	cmd.Flags().StringVar(&params.Role, "role", "", "role")
	cmd.Flags().StringVar(&params.Email, "email", "", "email address")
	return cmd
}

func newProfileListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tROLE\tSTATUS\tCOMPANIES")
			for _, p := range ws.registry.Profiles {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Username, p.Name, p.Role, p.Status, strings.Join(p.CompanyIDs, ","))
			}
			return tw.Flush()
		},
	}
}

func newProfileGrantCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "grant <profile> <company>",
		Short: "Give a profile access to a company",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer ws.Close()

			profileID := args[0]
			if p, ok := ws.registry.ProfileByUsername(profileID); ok {
				profileID = p.ID
			}
			if err := ws.registry.Grant(profileID, args[1]); err != nil {
				return err
			}
			if err := ws.saveTenants(fmt.Sprintf("profile: grant %s to %s", args[1], args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted %s access to %s\n", args[0], args[1])
			return nil
		},
	}
}
