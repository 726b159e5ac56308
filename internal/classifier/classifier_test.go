package classifier

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/opclass/internal/expr"
)

func findMatch(r Result, conceptID int) (Match, bool) {
	for _, m := range r.Matches {
		if m.ConceptID == conceptID {
			return m, true
		}
	}
	return Match{}, false
}

func mustClassify(t *testing.T, raw string) Result {
	t.Helper()
	r, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify(%q) unexpected error: %v", raw, err)
	}
	return r
}

func TestClassify_Golden(t *testing.T) {
	tests := []struct {
		in       string
		top      int
		layer    Layer
		minConf  float64
		lesson   int
		module   string
		wantPro  bool
		contains []int
	}{
		{in: "5 × 14", top: 1, layer: LayerDirect, minConf: 0.95, lesson: 1, module: "Fundacional"},
		{in: "5 × 248", top: 1, layer: LayerDirect, minConf: 0.95, lesson: 3, module: "Fundacional"},
		{in: "48 + 37", top: 2, layer: LayerDirect, minConf: 0.90, lesson: 1, module: "Fundacional"},
		{in: "50 × 36", top: 1, layer: LayerDecomposition, minConf: 0.80, lesson: 2, module: "Fundacional", contains: []int{20}},
		{in: "25 × 16", top: 16, layer: LayerDecomposition, minConf: 0.82, lesson: 1, module: "Automação", wantPro: true},
		{in: "304 - 187", top: 9, layer: LayerDirect, minConf: 0.90, lesson: 2, module: "Consolidação"},
		{in: "7 + 8 + 3", top: 6, layer: LayerDirect, minConf: 0.90, lesson: 1, module: "Fundacional", contains: []int{18}},
		{in: "84 / 2", top: 4, layer: LayerDirect, minConf: 1.0, lesson: 2, module: "Fundacional"},
		{in: "81 / 9", top: 15, layer: LayerHeuristic, minConf: 0.45, lesson: 2, module: "Consolidação"},
		{in: "2405 x 13", top: 21, layer: LayerDecomposition, minConf: 0.57, lesson: 3, module: "Ritmo", wantPro: true},
		{in: "98 - 37", top: 7, layer: LayerDirect, minConf: 0.87, lesson: 1, module: "Fundacional", contains: []int{19}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := mustClassify(t, tt.in)
			top, ok := r.Top()
			if !ok {
				t.Fatalf("no matches; fallback = %q", r.FallbackMessage)
			}
			if top.ConceptID != tt.top {
				t.Errorf("top concept = %d, want %d (matches %+v)", top.ConceptID, tt.top, r.Matches)
			}
			if top.MatchLayer != tt.layer {
				t.Errorf("top layer = %s, want %s", top.MatchLayer, tt.layer)
			}
			if top.Confidence < tt.minConf {
				t.Errorf("top confidence = %.2f, want >= %.2f", top.Confidence, tt.minConf)
			}
			if top.ModuleName != tt.module {
				t.Errorf("module = %q, want %q", top.ModuleName, tt.module)
			}
			if top.IsPro != tt.wantPro {
				t.Errorf("isPro = %v, want %v", top.IsPro, tt.wantPro)
			}
			if r.RecommendedLesson == nil {
				t.Fatal("recommendedLesson is nil")
			}
			if r.RecommendedLesson.LessonNumber != tt.lesson {
				t.Errorf("lesson = %d, want %d (%s)", r.RecommendedLesson.LessonNumber, tt.lesson, r.RecommendedLesson.Rationale)
			}
			if r.RecommendedLesson.ConceptID != top.ConceptID {
				t.Errorf("lesson concept = %d, want %d", r.RecommendedLesson.ConceptID, top.ConceptID)
			}
			for _, id := range tt.contains {
				if _, ok := findMatch(r, id); !ok {
					t.Errorf("matches do not include concept %d: %+v", id, r.Matches)
				}
			}
		})
	}
}

func TestClassify_AmbiguityCap(t *testing.T) {
	r := mustClassify(t, "5 × 9")
	for _, id := range []int{1, 3} {
		m, ok := findMatch(r, id)
		if !ok {
			t.Fatalf("concept %d missing from %+v", id, r.Matches)
		}
		if m.Confidence > 0.85 {
			t.Errorf("concept %d confidence = %.2f, want <= 0.85", id, m.Confidence)
		}
	}
	if r.Matches[0].ConceptID != 1 {
		t.Errorf("tie should keep rule order, top = %d", r.Matches[0].ConceptID)
	}
}

func TestClassify_CapOnClampedWeights(t *testing.T) {
	// ×100 (weight 1.05) and ×4 (weight 0.98) both match exactly.
	r := mustClassify(t, "4 × 100")
	if len(r.Matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(r.Matches), r.Matches)
	}
	if r.Matches[0].ConceptID != 8 {
		t.Errorf("top = %d, want 8", r.Matches[0].ConceptID)
	}
	for _, m := range r.Matches {
		if m.Confidence != 0.85 {
			t.Errorf("concept %d confidence = %.2f, want 0.85", m.ConceptID, m.Confidence)
		}
	}
	if r.RecommendedLesson.LessonNumber != 1 {
		t.Errorf("lesson = %d, want 1 (key operands excluded)", r.RecommendedLesson.LessonNumber)
	}
}

func TestClassify_MagnitudePenalty(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5 × 999", 1.0},
		{"5 × 2405", 0.95},
		{"5 × 20000", 0.90},
		{"2405 × 5", 0.95},
	}
	for _, tt := range tests {
		r := mustClassify(t, tt.in)
		m, ok := findMatch(r, 1)
		if !ok {
			t.Fatalf("%s: concept 1 missing", tt.in)
		}
		if m.Confidence != tt.want {
			t.Errorf("%s: confidence = %.2f, want %.2f", tt.in, m.Confidence, tt.want)
		}
	}
}

func TestClassify_DirectReasons(t *testing.T) {
	tests := []struct {
		in      string
		concept int
		want    string
	}{
		{"5 × 14", 1, "Um dos operandos é 5"},
		{"84 / 2", 4, "O divisor é 2"},
		{"48 + 37", 2, "8 e 7"},
		{"304 - 187", 9, "Empréstimo detectado"},
	}
	for _, tt := range tests {
		r := mustClassify(t, tt.in)
		m, ok := findMatch(r, tt.concept)
		if !ok {
			t.Fatalf("%s: concept %d missing", tt.in, tt.concept)
		}
		if !strings.Contains(m.Reason, tt.want) {
			t.Errorf("%s: reason = %q, want it to contain %q", tt.in, m.Reason, tt.want)
		}
	}
}

func TestClassify_Fallback(t *testing.T) {
	tests := []struct {
		in      string
		concept string
	}{
		{"41 + 32", "conceito 2"},
		{"37 - 52", "conceito 9"},
		{"91 / 9", "conceito 13"},
		{"7 / 0", "conceito 13"},
		{"0 × 0", "conceito 16"},
	}
	for _, tt := range tests {
		r := mustClassify(t, tt.in)
		if len(r.Matches) != 0 {
			t.Errorf("%s: expected no matches, got %+v", tt.in, r.Matches)
			continue
		}
		if r.RecommendedLesson != nil {
			t.Errorf("%s: recommendedLesson set on empty result", tt.in)
		}
		if !strings.Contains(r.FallbackMessage, tt.concept) {
			t.Errorf("%s: fallback = %q, want mention of %q", tt.in, r.FallbackMessage, tt.concept)
		}
	}
}

func TestClassify_ParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", expr.ErrEmptyInput},
		{"√49", expr.ErrUnsupportedOperation},
		{"999999 × 2", expr.ErrOutOfRange},
		{"42", expr.ErrInvalidFormat},
	}
	for _, tt := range tests {
		_, err := Classify(tt.in)
		if err == nil {
			t.Errorf("Classify(%q) expected error", tt.in)
			continue
		}
		var ce *ClassificationError
		if !errors.As(err, &ce) {
			t.Errorf("Classify(%q) error %T, want *ClassificationError", tt.in, err)
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("Classify(%q) = %v, want wrapped %v", tt.in, err, tt.want)
		}
		var pe *expr.ParseError
		if !errors.As(err, &pe) || pe.Input != tt.in {
			t.Errorf("Classify(%q) wrapped parse error missing or lost input", tt.in)
		}
	}
}

// corpus covers every operator and magnitude band.
func corpus() []string {
	values := []int{0, 1, 2, 3, 4, 5, 7, 9, 10, 11, 12, 15, 19, 25, 37, 48, 50, 98, 100, 102, 187, 304, 999, 1001, 2405, 10001, 99999}
	var out []string
	for _, a := range values {
		for _, b := range values {
			for _, op := range []string{"+", "-", "×", "÷"} {
				out = append(out, fmt.Sprintf("%d %s %d", a, op, b))
			}
		}
	}
	return append(out, "7 + 8 + 3", "10 + 20 + 30", "99 + 1 + 5")
}

func TestClassify_Properties(t *testing.T) {
	for _, in := range corpus() {
		r := mustClassify(t, in)

		if (r.RecommendedLesson == nil) == (r.FallbackMessage == "") {
			t.Errorf("%s: exactly one of lesson/fallback must be set", in)
		}
		if (len(r.Matches) == 0) != (r.FallbackMessage != "") {
			t.Errorf("%s: fallback set iff no matches", in)
		}

		seen := make(map[int]bool)
		for i, m := range r.Matches {
			if m.Confidence < 0 || m.Confidence > 1 {
				t.Errorf("%s: confidence %v out of range", in, m.Confidence)
			}
			if math.Abs(m.Confidence*100-math.Round(m.Confidence*100)) > 1e-9 {
				t.Errorf("%s: confidence %v not rounded", in, m.Confidence)
			}
			if i > 0 && r.Matches[i-1].Confidence < m.Confidence {
				t.Errorf("%s: matches not sorted: %+v", in, r.Matches)
			}
			if seen[m.ConceptID] {
				t.Errorf("%s: duplicate concept %d", in, m.ConceptID)
			}
			seen[m.ConceptID] = true
			if m.Reason == "" {
				t.Errorf("%s: concept %d has empty reason", in, m.ConceptID)
			}
			if m.IsPro != (m.ConceptID > 15) {
				t.Errorf("%s: concept %d isPro = %v", in, m.ConceptID, m.IsPro)
			}
		}

		if l := r.RecommendedLesson; l != nil {
			if l.LessonNumber < 1 || l.LessonNumber > 3 || l.LessonName == "" || l.Rationale == "" {
				t.Errorf("%s: invalid lesson %+v", in, l)
			}
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	opt := cmp.AllowUnexported(expr.ParsedExpression{})
	for _, in := range corpus() {
		first := mustClassify(t, in)
		second := mustClassify(t, in)
		if diff := cmp.Diff(first, second, opt); diff != "" {
			t.Errorf("%s: results differ (-first +second):\n%s", in, diff)
		}
	}
}
