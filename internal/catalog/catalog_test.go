package catalog

import (
	"slices"
	"testing"

	"github.com/abhisek/opclass/internal/expr"
)

func TestValidate_BuiltIn(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestConcepts_Count(t *testing.T) {
	all := Concepts()
	if len(all) != 24 {
		t.Fatalf("got %d concepts, want 24", len(all))
	}
	for i, c := range all {
		if c.ID != i+1 {
			t.Errorf("Concepts()[%d].ID = %d, want %d", i, c.ID, i+1)
		}
	}
}

func TestConceptsByModule(t *testing.T) {
	tests := []struct {
		module ModuleID
		want   int
	}{
		{ModuleFundacional, 8},
		{ModuleConsolidacao, 7},
		{ModuleAutomacao, 3},
		{ModuleRitmo, 3},
		{ModulePrecisao, 3},
		{ModuleID(9), 0},
	}
	for _, tt := range tests {
		if got := len(ConceptsByModule(tt.module)); got != tt.want {
			t.Errorf("ConceptsByModule(%d) = %d entries, want %d", tt.module, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(2)
	if !ok {
		t.Fatal("Lookup(2) not found")
	}
	if c.Name != "Soma com transporte" {
		t.Errorf("name = %q", c.Name)
	}
	if ModuleName(c.ModuleID) != "Fundacional" {
		t.Errorf("module = %q, want Fundacional", ModuleName(c.ModuleID))
	}

	for _, id := range []int{0, -1, 25} {
		if _, ok := Lookup(id); ok {
			t.Errorf("Lookup(%d) found, want missing", id)
		}
	}
}

func TestConcept_ProAndLesson(t *testing.T) {
	for _, c := range Concepts() {
		if c.IsPro() != (c.ID > 15) {
			t.Errorf("concept %d IsPro = %v", c.ID, c.IsPro())
		}
		if c.HasLesson() != (c.ID <= 8) {
			t.Errorf("concept %d HasLesson = %v", c.ID, c.HasLesson())
		}
		if c.IsPro() && c.ModuleID < ModuleAutomacao {
			t.Errorf("pro concept %d in module %d", c.ID, c.ModuleID)
		}
	}
}

func TestDirectRules_PriorityOrder(t *testing.T) {
	rules := DirectRules()
	if len(rules) != 15 {
		t.Fatalf("got %d direct rules, want 15", len(rules))
	}
	for i, r := range rules {
		if r.ConceptID != i+1 {
			t.Errorf("rule %d is for concept %d, want %d", i, r.ConceptID, i+1)
		}
	}
}

func TestDirectRules_Predicates(t *testing.T) {
	rules := make(map[int]DirectRule)
	for _, r := range DirectRules() {
		rules[r.ConceptID] = r
	}

	tests := []struct {
		concept int
		ops     []int
		want    bool
	}{
		{1, []int{5, 14}, true},
		{1, []int{14, 5}, true},
		{1, []int{50, 36}, false},
		{2, []int{48, 37}, true},
		{2, []int{41, 37}, false},
		{2, []int{148, 37}, false},
		{4, []int{84, 2}, true},
		{4, []int{85, 2}, false},
		{4, []int{2, 84}, false},
		{6, []int{7, 8, 3}, true},
		{6, []int{7, 8}, false},
		{7, []int{86, 42}, true},
		{7, []int{42, 86}, false},
		{7, []int{52, 37}, false},
		{7, []int{386, 142}, false},
		{9, []int{304, 187}, true},
		{9, []int{52, 37}, true},
		{9, []int{37, 52}, false},
		{11, []int{10, 3}, true},
		{11, []int{3, 10}, false},
		{13, []int{84, 4}, true},
		{15, []int{56, 8}, true},
		{8, []int{100, 37}, true},
		{14, []int{11, 23}, true},
	}
	for _, tt := range tests {
		r, ok := rules[tt.concept]
		if !ok {
			t.Fatalf("no rule for concept %d", tt.concept)
		}
		if got := r.Match(tt.ops); got != tt.want {
			t.Errorf("rule %d Match(%v) = %v, want %v", tt.concept, tt.ops, got, tt.want)
		}
	}
}

func TestHasDigitBorrow(t *testing.T) {
	tests := []struct {
		minuend, subtrahend int
		want                bool
	}{
		{304, 187, true},
		{74, 32, false},
		{52, 37, true},
		{86, 42, false},
		{100, 1, true},
		{99, 99, false},
		{1000, 0, false},
	}
	for _, tt := range tests {
		if got := HasDigitBorrow(tt.minuend, tt.subtrahend); got != tt.want {
			t.Errorf("HasDigitBorrow(%d, %d) = %v, want %v", tt.minuend, tt.subtrahend, got, tt.want)
		}
	}
}

func TestKeyTables(t *testing.T) {
	wantMult := []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 100}
	if got := KeyMultipliers(); !slices.Equal(got, wantMult) {
		t.Errorf("KeyMultipliers() = %v, want %v", got, wantMult)
	}
	if id, ok := MultiplierConcept(5); !ok || id != 1 {
		t.Errorf("MultiplierConcept(5) = %d, %v", id, ok)
	}
	if id, ok := DivisorConcept(8); !ok || id != 15 {
		t.Errorf("DivisorConcept(8) = %d, %v", id, ok)
	}
	if _, ok := DivisorConcept(9); ok {
		t.Error("DivisorConcept(9) found, want missing")
	}
}

func TestFallbackConcept(t *testing.T) {
	tests := []struct {
		op   expr.Operator
		want int
	}{
		{expr.OpMultiplication, 16},
		{expr.OpAddition, 2},
		{expr.OpSubtraction, 9},
		{expr.OpDivision, 13},
	}
	for _, tt := range tests {
		c, ok := FallbackConcept(tt.op)
		if !ok || c.ID != tt.want {
			t.Errorf("FallbackConcept(%s) = %d, %v; want %d", tt.op, c.ID, ok, tt.want)
		}
	}
}

func TestLessonName(t *testing.T) {
	tests := map[int]string{
		1: "Estrutura",
		2: "Compressão",
		3: "Ritmo e Transferência",
		0: "",
		4: "",
	}
	for n, want := range tests {
		if got := LessonName(n); got != want {
			t.Errorf("LessonName(%d) = %q, want %q", n, got, want)
		}
	}
}
