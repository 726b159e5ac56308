package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	noHistory bool
	settings  = viper.New()
)

// errReported is returned when the command already printed the failure for
// the user; Execute then only sets the exit code.
var errReported = errors.New("already reported")

var rootCmd = &cobra.Command{
	Use:   "opclass",
	Short: "Classify arithmetic expressions by mental-math technique",
	Long: "opclass maps an arithmetic expression such as \"5 × 14\" to the " +
		"mental-math concepts it exercises and recommends a lesson.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the CLI until it finishes or the process is interrupted. A
// non-nil error means the process should exit 1.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/opclass/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides OPCLASS_DB)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-mode", "", "Log mode: dev or prod")
	pf.BoolVar(&noHistory, "no-history", false, "Do not record classifications")

	_ = settings.BindPFlag("db", pf.Lookup("db"))
	_ = settings.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = settings.BindPFlag("log.mode", pf.Lookup("log-mode"))

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}
