package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/abhisek/opclass/internal/catalog"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// displayVersion returns version when it is a valid semver, otherwise
// "(devel)".
func displayVersion(v string) string {
	if semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build and catalogue versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "opclass %s (catálogo %s)\n", displayVersion(version), catalog.Version)
	},
}
