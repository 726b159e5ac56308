package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/expr"
	"github.com/abhisek/opclass/internal/ui/components"
	"github.com/abhisek/opclass/internal/ui/theme"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text (alias table), json and yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "table":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q is not a data encoding", f)
}

const barWidth = 20

// Result writes one classification.
func Result(w io.Writer, f Format, res classifier.Result) error {
	if f != FormatText {
		return Encode(w, f, NewResultView(res))
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render(res.Expression.String()) + "\n")
	if len(res.Matches) == 0 {
		b.WriteString(theme.Hint.Render(res.FallbackMessage) + "\n")
		_, err := lipgloss.Fprint(w, b.String())
		return err
	}
	for i, m := range res.Matches {
		b.WriteString(matchLine(i+1, m) + "\n")
	}
	if l := res.RecommendedLesson; l != nil {
		fmt.Fprintf(&b, "\nLição %d · %s: %s\n", l.LessonNumber, l.LessonName, l.Rationale)
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func matchLine(rank int, m classifier.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s ", rank, theme.Body.Bold(true).Render(fmt.Sprintf("[%d] %s", m.ConceptID, m.ConceptName)))
	if m.IsPro {
		b.WriteString(theme.ProBadge.Render("PRO") + " ")
	}
	if m.HasLesson {
		b.WriteString(theme.LessonBadge.Render("● lição") + " ")
	}
	b.WriteString("\n   ")
	b.WriteString(components.NewConfidenceBar(m.Confidence, barWidth).View())
	b.WriteString("  " + theme.Layer(string(m.MatchLayer)))
	b.WriteString("  " + theme.Hint.Render(m.ModuleName))
	b.WriteString("\n   " + m.Reason)
	return b.String()
}

// ClassifyError writes a rejected input. In text mode only the user-facing
// message is shown.
func ClassifyError(w io.Writer, f Format, err error) error {
	ev := NewErrorView(err)
	if f != FormatText {
		return Encode(w, f, map[string]ErrorView{"error": ev})
	}
	_, werr := lipgloss.Fprintln(w, theme.ErrorText.Render(ev.Message))
	return werr
}

// Parsed writes a parsed expression.
func Parsed(w io.Writer, f Format, p expr.ParsedExpression) error {
	if f != FormatText {
		return Encode(w, f, NewParsedView(p))
	}
	ops := make([]string, 0, p.Len())
	for _, n := range p.Operands() {
		ops = append(ops, fmt.Sprint(n))
	}
	_, err := fmt.Fprintf(w, "%s\noperator: %s\noperands: %s\n", p, p.Operator(), strings.Join(ops, ", "))
	return err
}

// Concepts writes the catalogue grouped by module.
func Concepts(w io.Writer, f Format, views []ConceptView) error {
	if f != FormatText {
		return Encode(w, f, views)
	}
	var b strings.Builder
	module := -1
	for _, v := range views {
		if v.ModuleID != module {
			if module != -1 {
				b.WriteString("\n")
			}
			module = v.ModuleID
			b.WriteString(theme.Title.Render(fmt.Sprintf("Módulo %d · %s", v.ModuleID, v.ModuleName)) + "\n")
		}
		fmt.Fprintf(&b, "  %2d  %-34s", v.ID, v.Name)
		if v.Operation != "" {
			b.WriteString(theme.Hint.Render(v.Operation))
		}
		if v.IsPro {
			b.WriteString(" " + theme.ProBadge.Render("PRO"))
		}
		b.WriteString("\n")
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// Batch writes the outcome of a batch run followed by a summary line.
func Batch(w io.Writer, f Format, lines []BatchLine) error {
	if f != FormatText {
		return Encode(w, f, lines)
	}
	var b strings.Builder
	failed := 0
	for _, l := range lines {
		switch {
		case l.Error != nil:
			failed++
			fmt.Fprintf(&b, "%4d  %-24s %s\n", l.Line, l.Input, theme.ErrorText.Render(l.Error.Message))
		case len(l.Result.Matches) == 0:
			fmt.Fprintf(&b, "%4d  %-24s %s\n", l.Line, l.Input, theme.Hint.Render("sem conceito"))
		default:
			top := l.Result.Matches[0]
			fmt.Fprintf(&b, "%4d  %-24s [%d] %s %.2f %s\n",
				l.Line, l.Input, top.ConceptID, top.ConceptName, top.Confidence, theme.Layer(string(top.MatchLayer)))
		}
	}
	fmt.Fprintf(&b, "\n%d expressões, %d rejeitadas\n", len(lines), failed)
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// History writes stored classifications, newest first.
func History(w io.Writer, f Format, views []HistoryView) error {
	if f != FormatText {
		return Encode(w, f, views)
	}
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "Nenhuma classificação registrada.")
		return err
	}
	var b strings.Builder
	for _, v := range views {
		outcome := ""
		switch {
		case v.ErrorKind != "":
			outcome = theme.ErrorText.Render(v.ErrorKind)
		case v.Fallback:
			outcome = theme.Hint.Render("sem conceito")
		default:
			name := ""
			if c, ok := catalog.Lookup(v.ConceptID); ok {
				name = c.Name
			}
			outcome = fmt.Sprintf("[%d] %s %.2f", v.ConceptID, name, v.Confidence)
		}
		fmt.Fprintf(&b, "%6d  %s  %-4s  %-20s %s\n", v.Sequence, v.Timestamp, v.Source, v.Raw, outcome)
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// LLMEvents writes recorded LLM calls with a token and cost total.
func LLMEvents(w io.Writer, f Format, views []LLMEventView) error {
	if f != FormatText {
		return Encode(w, f, views)
	}
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "Nenhuma chamada de IA registrada.")
		return err
	}
	var b strings.Builder
	var in, out int
	var cost float64
	for _, v := range views {
		ok := "✓"
		if !v.Success {
			ok = theme.ErrorText.Render("✗")
		}
		model := v.Model
		if len(model) > 28 {
			model = model[:28]
		}
		fmt.Fprintf(&b, "%6d  %s  %-10s  %-28s  %6d  %6d  %6dms  $%.4f  %s\n",
			v.Sequence, v.Timestamp, v.Purpose, model, v.InputTokens, v.OutputTokens, v.LatencyMs, v.CostUSD, ok)
		in += v.InputTokens
		out += v.OutputTokens
		cost += v.CostUSD
	}
	fmt.Fprintf(&b, "\n%d chamadas, %d tokens de entrada, %d de saída, $%.4f\n", len(views), in, out, cost)
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// Walkthrough writes a coach explanation.
func Walkthrough(w io.Writer, f Format, wt *coach.Walkthrough) error {
	if f != FormatText {
		return Encode(w, f, wt)
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render(wt.Title) + "\n")
	for i, s := range wt.Steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}
	if wt.Check != "" {
		b.WriteString(theme.Hint.Render("Verificação: "+wt.Check) + "\n")
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}
