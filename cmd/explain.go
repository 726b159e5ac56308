package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/report"
	"github.com/abhisek/opclass/internal/store"
)

var explainCmd = &cobra.Command{
	Use:   "explain <expression...>",
	Short: "Ask the AI coach for a step-by-step walkthrough of the top concept",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		env, err := openEnv(cmd, storeHistory)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		co := env.newCoach(cmd.Context())
		if !co.Available() {
			return fmt.Errorf("AI coach unavailable: set OPCLASS_LLM_PROVIDER or a provider API key")
		}

		res, err := env.svc.Classify(cmd.Context(), strings.Join(args, " "), store.SourceCLI)
		if err != nil {
			if werr := report.ClassifyError(out, format, err); werr != nil {
				return werr
			}
			return errReported
		}

		wt, err := co.Explain(cmd.Context(), res)
		if errors.Is(err, coach.ErrNoConcept) {
			fmt.Fprintln(out, res.FallbackMessage)
			return errReported
		}
		if err != nil {
			return fmt.Errorf("explain: %w", err)
		}
		return report.Walkthrough(out, format, wt)
	},
}

func init() {
	addFormatFlags(explainCmd)
}
