package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/report"
	"github.com/abhisek/opclass/internal/service"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression...>",
	Short: "Show the operands and operator of an expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p, err := service.New(nil).Parse(strings.Join(args, " "))
		if err != nil {
			if werr := report.ClassifyError(out, format, err); werr != nil {
				return werr
			}
			return errReported
		}
		return report.Parsed(out, format, p)
	},
}

func init() {
	addFormatFlags(parseCmd)
}
