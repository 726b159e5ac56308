package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/coach"
	"github.com/abhisek/opclass/internal/expr"
	"github.com/abhisek/opclass/internal/service"
	"github.com/abhisek/opclass/internal/store"
)

func mustClassify(t *testing.T, raw string) classifier.Result {
	t.Helper()
	res, err := classifier.Classify(raw)
	require.NoError(t, err)
	return res
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"", FormatText, false},
		{"table", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, FormatJSON, mustClassify(t, "5 × 14")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]any{
		"operands": []any{5.0, 14.0},
		"operator": "multiplication",
		"raw":      "5 × 14",
	}, got["expression"])

	matches := got["matches"].([]any)
	top := matches[0].(map[string]any)
	assert.Equal(t, 1.0, top["conceptId"])
	assert.Equal(t, "direct", top["matchLayer"])
	assert.Contains(t, got, "recommendedLesson")
	assert.NotContains(t, got, "fallbackMessage")
}

func TestResult_FallbackJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, FormatJSON, mustClassify(t, "41 + 32")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []any{}, got["matches"])
	assert.NotContains(t, got, "recommendedLesson")
	assert.NotEmpty(t, got["fallbackMessage"])
}

func TestResult_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, FormatYAML, mustClassify(t, "25 × 16")))

	var got struct {
		Expression ParsedView         `yaml:"expression"`
		Matches    []classifier.Match `yaml:"matches"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(ParsedView{Operands: []int{25, 16}, Operator: "multiplication", Raw: "25 × 16"}, got.Expression); diff != "" {
		t.Errorf("expression mismatch (-want +got):\n%s", diff)
	}
	require.NotEmpty(t, got.Matches)
	assert.Equal(t, 16, got.Matches[0].ConceptID)
}

func TestResult_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, FormatText, mustClassify(t, "5 × 14")))
	out := buf.String()
	c := catalog.MustLookup(1)
	assert.Contains(t, out, "5 × 14")
	assert.Contains(t, out, c.Name)
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "Um dos operandos é 5")
	assert.Contains(t, out, "Lição 1")
	assert.NotContains(t, out, "\x1b[")
}

func TestClassifyError(t *testing.T) {
	_, err := classifier.Classify("√49")
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, ClassifyError(&buf, FormatText, err))
	assert.Contains(t, buf.String(), "Operação não suportada")

	buf.Reset()
	require.NoError(t, ClassifyError(&buf, FormatJSON, err))
	var got map[string]ErrorView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "unsupported_operation", got["error"].Code)

	assert.Equal(t, "internal", NewErrorView(errors.New("x")).Code)
}

func TestParsed(t *testing.T) {
	p, err := expr.Parse("7 + 8 + 3")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Parsed(&buf, FormatText, p))
	assert.Contains(t, buf.String(), "operands: 7, 8, 3")

	buf.Reset()
	require.NoError(t, Parsed(&buf, FormatJSON, p))
	var got ParsedView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []int{7, 8, 3}, got.Operands)
}

func TestConceptViews(t *testing.T) {
	all := ConceptViews(0)
	assert.Len(t, all, len(catalog.Concepts()))

	m1 := ConceptViews(catalog.ModuleFundacional)
	require.NotEmpty(t, m1)
	for _, v := range m1 {
		assert.Equal(t, int(catalog.ModuleFundacional), v.ModuleID)
	}

	v := NewConceptView(catalog.MustLookup(1))
	assert.Len(t, v.Lessons, 3)
	assert.False(t, v.IsPro)

	var buf bytes.Buffer
	require.NoError(t, Concepts(&buf, FormatText, all))
	assert.Contains(t, buf.String(), "Módulo 1")
	assert.Contains(t, buf.String(), "PRO")
}

func TestBatch(t *testing.T) {
	items := []service.BatchItem{
		{Line: 1, Input: "5 × 14", Result: mustClassify(t, "5 × 14")},
		{Line: 2, Input: "abc", Err: &classifier.ClassificationError{Err: &expr.ParseError{Kind: expr.KindInvalidFormat, Message: "Formato inválido."}}},
		{Line: 3, Input: "41 + 32", Result: mustClassify(t, "41 + 32")},
	}
	lines := NewBatchLines(items)
	require.Len(t, lines, 3)
	assert.NotNil(t, lines[0].Result)
	assert.Nil(t, lines[0].Error)
	assert.Equal(t, "invalid_format", lines[1].Error.Code)

	var buf bytes.Buffer
	require.NoError(t, Batch(&buf, FormatText, lines))
	assert.Contains(t, buf.String(), "3 expressões, 1 rejeitadas")
	assert.Contains(t, buf.String(), "sem conceito")
}

func TestHistory(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	views := NewHistoryViews([]store.ClassificationEvent{{
		Sequence:  7,
		Timestamp: ts,
		ClassificationEventData: store.ClassificationEventData{
			Source: store.SourceCLI, Raw: "5 × 14", ConceptID: 1, Confidence: 1, CatalogVersion: catalog.Version,
		},
	}})
	require.Len(t, views, 1)
	assert.Equal(t, "2026-03-01T12:00:00Z", views[0].Timestamp)

	var buf bytes.Buffer
	require.NoError(t, History(&buf, FormatText, views))
	assert.Contains(t, buf.String(), catalog.MustLookup(1).Name)

	buf.Reset()
	require.NoError(t, History(&buf, FormatText, nil))
	assert.Contains(t, buf.String(), "Nenhuma")
}

func TestWalkthrough(t *testing.T) {
	wt := &coach.Walkthrough{ConceptID: 1, Title: "Vezes 5", Steps: []string{"14 × 10 = 140", "140 ÷ 2 = 70"}, Check: "70 ÷ 5 = 14"}
	var buf bytes.Buffer
	require.NoError(t, Walkthrough(&buf, FormatText, wt))
	assert.Contains(t, buf.String(), "2. 140 ÷ 2 = 70")
	assert.Contains(t, buf.String(), "Verificação: 70 ÷ 5 = 14")
}

func TestLLMEvents(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	views := NewLLMEventViews([]store.LLMRequestEvent{
		{Sequence: 1, Timestamp: ts, LLMRequestEventData: store.LLMRequestEventData{
			Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "coach",
			InputTokens: 300, OutputTokens: 120, LatencyMs: 900, Success: true, CostUSD: 0.0009,
		}},
		{Sequence: 2, Timestamp: ts, LLMRequestEventData: store.LLMRequestEventData{
			Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "coach",
			InputTokens: 100, ErrorMessage: "rate limited",
		}},
	})
	require.Len(t, views, 2)
	assert.Equal(t, "rate limited", views[1].Error)

	var buf bytes.Buffer
	require.NoError(t, LLMEvents(&buf, FormatText, views))
	assert.Contains(t, buf.String(), "2 chamadas, 400 tokens de entrada, 120 de saída, $0.0009")

	buf.Reset()
	require.NoError(t, LLMEvents(&buf, FormatJSON, views))
	var got []LLMEventView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(views, got); diff != "" {
		t.Errorf("LLM events JSON mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	require.NoError(t, LLMEvents(&buf, FormatText, nil))
	assert.Contains(t, buf.String(), "Nenhuma chamada")
}
