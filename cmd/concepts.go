package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/report"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "List the concept catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		module, _ := cmd.Flags().GetInt("module")
		if module != 0 {
			if _, ok := catalog.LookupModule(catalog.ModuleID(module)); !ok {
				return fmt.Errorf("unknown module %d (want 1-%d)", module, len(catalog.Modules()))
			}
		}
		return report.Concepts(cmd.OutOrStdout(), format, report.ConceptViews(catalog.ModuleID(module)))
	},
}

func init() {
	addFormatFlags(conceptsCmd)
	conceptsCmd.Flags().Int("module", 0, "Only list concepts of this module (1-5)")
}
