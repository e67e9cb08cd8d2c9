package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kiala-nvumbi/DINK1/internal/advisor"
	"github.com/kiala-nvumbi/DINK1/internal/format"
)

func newAdviseCommand(flags *globalFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask for financial advice on the --year figures",
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

			var next advisor.Advisor
			gemini, err := advisor.NewGemini(cmd.Context(), os.Getenv(ws.cfg.Advisor.APIKeyEnv), ws.cfg.Advisor.Model)
			switch {
			case errors.Is(err, advisor.ErrNoAPIKey):
				ws.logger.Warn("advisor disabled", zap.String("env", ws.cfg.Advisor.APIKeyEnv))
			case err != nil:
				ws.logger.Warn("advisor unavailable", zap.Error(err))
			default:
				next = gemini
			}

			guard := advisor.NewGuard(next,
				advisor.WithTimeout(ws.cfg.Advisor.Timeout),
				advisor.WithLogger(ws.logger))
			advice := guard.Advise(cmd.Context(), summary.Text())

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprintln(out, advice)
				return nil
			}
			rendered, err := format.Markdown(advice, 80, "")
			if err != nil {
				fmt.Fprintln(out, advice)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the advice without markdown rendering")
	return cmd
}
