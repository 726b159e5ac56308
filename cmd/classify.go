package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/report"
	"github.com/abhisek/opclass/internal/store"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <expression...>",
	Short: "Classify an expression, or every line of a file",
	Example: `  opclass classify 5 × 14
  opclass classify --json "48 + 37"
  opclass classify --file exercicios.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		if file == "" && len(args) == 0 {
			return fmt.Errorf("expression or --file required")
		}
		if file != "" && len(args) > 0 {
			return fmt.Errorf("pass either an expression or --file, not both")
		}

		env, err := openEnv(cmd, storeHistory)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		if file != "" {
			return classifyFile(cmd, env, file, format)
		}

		res, err := env.svc.Classify(cmd.Context(), strings.Join(args, " "), store.SourceCLI)
		if err != nil {
			if werr := report.ClassifyError(out, format, err); werr != nil {
				return werr
			}
			return errReported
		}
		return report.Result(out, format, res)
	},
}

func classifyFile(cmd *cobra.Command, env *appEnv, path string, format report.Format) error {
	inputs, err := readExpressions(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%s: no expressions", path)
	}

	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("classificando"),
		progressbar.OptionClearOnFinish(),
	)
	items, err := env.svc.ClassifyBatch(cmd.Context(), inputs, store.SourceCLI, func(int) {
		if err := bar.Add(1); err != nil {
			env.log.Debug("progress bar update failed", "error", err)
		}
	})
	if ferr := bar.Finish(); ferr != nil {
		env.log.Debug("progress bar finish failed", "error", ferr)
	}
	if err != nil {
		return err
	}

	lines := report.NewBatchLines(items)
	if err := report.Batch(cmd.OutOrStdout(), format, lines); err != nil {
		return err
	}
	for _, l := range lines {
		if l.Error != nil {
			return errReported
		}
	}
	return nil
}

// readExpressions returns the non-blank lines of path ("-" for stdin),
// skipping # comments.
func readExpressions(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var inputs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return inputs, nil
}

// outputFormat resolves --json and --format; --json wins.
func outputFormat(cmd *cobra.Command) (report.Format, error) {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.FormatJSON, nil
	}
	f, _ := cmd.Flags().GetString("format")
	return report.ParseFormat(f)
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output JSON")
	cmd.Flags().String("format", "text", "Output format: text, json or yaml")
}

func init() {
	addFormatFlags(classifyCmd)
	classifyCmd.Flags().String("file", "", `Classify every line of a file ("-" for stdin)`)
}
