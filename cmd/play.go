package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Classify expressions interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp launches the TUI. Logs go to stderr, so the default level stays
// quiet to keep the screen clean.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd, storeHistory)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(app.Options{
		Service: env.svc,
		Coach:   env.newCoach(cmd.Context()),
	})
}
