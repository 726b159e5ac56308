package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/report"
)

// resetFlags restores every flag to its default so tests do not leak state
// through the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	db string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("OPCLASS_DB", "")
	for _, k := range []string{
		"OPCLASS_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	return harness{db: filepath.Join(dir, "opclass.db")}
}

func (h harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfgFile, noHistory = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--db", h.db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "opclass (devel)")
	assert.Contains(t, out, catalog.Version)
}

func TestDisplayVersion(t *testing.T) {
	assert.Equal(t, "v1.2.0", displayVersion("v1.2"))
	assert.Equal(t, "v0.3.1", displayVersion("v0.3.1"))
	assert.Equal(t, "(devel)", displayVersion("(devel)"))
	assert.Equal(t, "(devel)", displayVersion("1.2.0"))
}

func TestClassify_JSON(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "classify", "--json", "5", "×", "14")
	require.NoError(t, err)

	var got struct {
		Matches []struct {
			ConceptID  int     `json:"conceptId"`
			Confidence float64 `json:"confidence"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Matches)
	assert.Equal(t, 1, got.Matches[0].ConceptID)
	assert.Equal(t, 1.0, got.Matches[0].Confidence)
}

func TestClassify_Text(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "classify", "48 + 37")
	require.NoError(t, err)
	assert.Contains(t, out, "Soma com transporte")
}

func TestClassify_ParseErrorPrintsMessage(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "classify", "2^8")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Operação não suportada")

	out, err = h.run(t, "classify", "--json", "")
	require.ErrorIs(t, err, errReported)
	var env map[string]report.ErrorView
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "empty_input", env["error"].Code)
}

func TestClassify_NeedsInput(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "classify")
	assert.Error(t, err)
}

func TestClassifyFile_AndHistory(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "exercicios.txt")
	require.NoError(t, os.WriteFile(file, []byte("# lista\n5 × 14\n\n48 + 37\n2^8\n"), 0o644))

	out, err := h.run(t, "classify", "--file", file)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "3 expressões, 1 rejeitadas")

	out, err = h.run(t, "history", "list", "--json")
	require.NoError(t, err)
	var views []report.HistoryView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	assert.Len(t, views, 3)

	out, err = h.run(t, "history", "prune", "--keep", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2 registros removidos")

	out, err = h.run(t, "history", "list", "--json", "--catalog", catalog.Version)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	assert.Len(t, views, 1)

	_, err = h.run(t, "history", "list", "--catalog", "latest")
	assert.Error(t, err)
}

func TestNoHistory(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "--no-history", "classify", "5 × 14")
	require.NoError(t, err)

	out, err := h.run(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma classificação registrada.")
}

func TestHistoryLLM_Empty(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "history", "llm")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma chamada de IA registrada.")
}

func TestParse(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "parse", "--json", "7 + 8 + 3")
	require.NoError(t, err)
	var got report.ParsedView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []int{7, 8, 3}, got.Operands)
	assert.Equal(t, "addition", got.Operator)
}

func TestConcepts(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "concepts", "--module", "2", "--format", "yaml")
	require.NoError(t, err)
	var views []report.ConceptView
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	assert.Len(t, views, len(catalog.ConceptsByModule(catalog.ModuleConsolidacao)))

	_, err = h.run(t, "concepts", "--module", "9")
	assert.Error(t, err)

	_, err = h.run(t, "concepts", "--format", "xml")
	assert.Error(t, err)
}

func TestExplain_WithoutProvider(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "explain", "5 × 14")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unavailable"))
}

func TestReadExpressions_Stdin(t *testing.T) {
	got, err := readExpressions(strings.NewReader("1 + 1\n  \n# x\n 2 × 5 \n"), "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 1", "2 × 5"}, got)
}
