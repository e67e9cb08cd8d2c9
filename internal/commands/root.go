package commands

import (
	"github.com/spf13/cobra"

	"github.com/kiala-nvumbi/DINK1/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "dink",
		Short:   "Double-entry bookkeeping for Angolan companies",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.repo, "repo", ".", "workspace directory")
	pf.StringVar(&flags.company, "company", "", "company id (default: ledger.active_company)")
	pf.StringVar(&flags.profile, "profile", "", "profile id (default: ledger.active_profile)")
	pf.IntVar(&flags.year, "year", 0, "fiscal year (default: current year)")

	rootCmd.AddCommand(
		newInitCommand(flags),
		newCompanyCommand(flags),
		newProfileCommand(flags),
		newAccountCommand(flags),
		newEntryCommand(flags),
		newReportCommand(flags),
		newAdviseCommand(flags),
	)

	return rootCmd
}
