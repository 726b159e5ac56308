package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/mod/semver"

	"github.com/abhisek/opclass/internal/expr"
)

const (
	numModules  = 5
	numConcepts = 24
)

// Indexed by ID; slot 0 is unused.
var (
	modules  [numModules + 1]Module
	concepts [numConcepts + 1]Concept
)

// directRules is seedDirectRules sorted by Priority.
var directRules []DirectRule

// sortedMultipliers holds the keys of keyMultipliers in ascending order.
var sortedMultipliers []int

func init() {
	for _, m := range seedModules {
		modules[m.ID] = m
	}
	for _, c := range seedConcepts {
		concepts[c.ID] = c
	}

	directRules = slices.Clone(seedDirectRules)
	slices.SortStableFunc(directRules, func(a, b DirectRule) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	for k := range keyMultipliers {
		sortedMultipliers = append(sortedMultipliers, k)
	}
	slices.Sort(sortedMultipliers)

	if err := Validate(); err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in catalogue: %v", err))
	}
}

// Lookup returns the concept with the given ID.
func Lookup(id int) (Concept, bool) {
	if id < 1 || id > numConcepts {
		return Concept{}, false
	}
	return concepts[id], true
}

// MustLookup returns the concept with the given ID and panics if it does not
// exist. Intended for IDs taken from the catalogue's own tables.
func MustLookup(id int) Concept {
	c, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown concept %d", id))
	}
	return c
}

// LookupModule returns the module with the given ID.
func LookupModule(id ModuleID) (Module, bool) {
	if id < 1 || id > numModules {
		return Module{}, false
	}
	return modules[id], true
}

// ModuleName returns the module's display name, or "" if unknown.
func ModuleName(id ModuleID) string {
	m, _ := LookupModule(id)
	return m.Name
}

// Modules returns every module in ID order.
func Modules() []Module {
	return slices.Clone(modules[1:])
}

// Concepts returns every concept in ID order.
func Concepts() []Concept {
	return slices.Clone(concepts[1:])
}

// ConceptsByModule returns the concepts of one module in ID order.
func ConceptsByModule(id ModuleID) []Concept {
	var result []Concept
	for _, c := range concepts[1:] {
		if c.ModuleID == id {
			result = append(result, c)
		}
	}
	return result
}

// DirectRules returns the layer-1 rules in priority order.
func DirectRules() []DirectRule {
	return slices.Clone(directRules)
}

// KeyMultipliers returns the multipliers with a dedicated concept, ascending.
func KeyMultipliers() []int {
	return slices.Clone(sortedMultipliers)
}

// MultiplierConcept returns the concept that teaches multiplying by n.
func MultiplierConcept(n int) (int, bool) {
	id, ok := keyMultipliers[n]
	return id, ok
}

// KeyDivisors returns the divisors with a dedicated concept, ascending.
func KeyDivisors() []int {
	result := make([]int, 0, len(keyDivisors))
	for k := range keyDivisors {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

// DivisorConcept returns the concept that teaches dividing by n.
func DivisorConcept(n int) (int, bool) {
	id, ok := keyDivisors[n]
	return id, ok
}

// FallbackConcept returns the generic concept recommended for an operator
// when no rule matches.
func FallbackConcept(op expr.Operator) (Concept, bool) {
	id, ok := fallbackConcepts[op]
	if !ok {
		return Concept{}, false
	}
	return Lookup(id)
}

// Validate checks the structural consistency of the built-in tables.
func Validate() error {
	var errs []error

	if !semver.IsValid(Version) {
		errs = append(errs, fmt.Errorf("version %q is not valid semver", Version))
	}

	for i, m := range modules[1:] {
		if int(m.ID) != i+1 || m.Name == "" {
			errs = append(errs, fmt.Errorf("module slot %d not populated", i+1))
		}
	}

	for i, c := range concepts[1:] {
		if c.ID != i+1 {
			errs = append(errs, fmt.Errorf("concept slot %d not populated", i+1))
			continue
		}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("concept %d has no name", c.ID))
		}
		if _, ok := LookupModule(c.ModuleID); !ok {
			errs = append(errs, fmt.Errorf("concept %d references unknown module %d", c.ID, c.ModuleID))
		}
		if c.IsPro() && c.ModuleID < ModuleAutomacao {
			errs = append(errs, fmt.Errorf("pro concept %d placed in module %d", c.ID, c.ModuleID))
		}
		if !c.IsPro() && c.ModuleID >= ModuleAutomacao {
			errs = append(errs, fmt.Errorf("free concept %d placed in pro module %d", c.ID, c.ModuleID))
		}
		if c.Weight <= 0 {
			errs = append(errs, fmt.Errorf("concept %d has non-positive weight", c.ID))
		}
	}

	seen := make(map[int]bool)
	for _, r := range directRules {
		c, ok := Lookup(r.ConceptID)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("direct rule references unknown concept %d", r.ConceptID))
			continue
		case seen[r.ConceptID]:
			errs = append(errs, fmt.Errorf("duplicate direct rule for concept %d", r.ConceptID))
		case c.Operation != r.Operator:
			errs = append(errs, fmt.Errorf("direct rule %d operator %s differs from concept operation %s", r.ConceptID, r.Operator, c.Operation))
		case r.Match == nil:
			errs = append(errs, fmt.Errorf("direct rule %d has no predicate", r.ConceptID))
		case r.Reason == nil && len(c.KeyOperands) == 0:
			errs = append(errs, fmt.Errorf("direct rule %d has neither key operands nor a reason", r.ConceptID))
		}
		seen[r.ConceptID] = true
	}
	for id := 1; id <= ProThreshold; id++ {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("concept %d has no direct rule", id))
		}
	}

	for n, id := range keyMultipliers {
		if c, ok := Lookup(id); !ok || c.Operation != expr.OpMultiplication {
			errs = append(errs, fmt.Errorf("multiplier %d maps to non-multiplication concept %d", n, id))
		}
	}
	for n, id := range keyDivisors {
		if c, ok := Lookup(id); !ok || c.Operation != expr.OpDivision {
			errs = append(errs, fmt.Errorf("divisor %d maps to non-division concept %d", n, id))
		}
	}
	for _, op := range expr.AllOperators() {
		if _, ok := FallbackConcept(op); !ok {
			errs = append(errs, fmt.Errorf("no fallback concept for %s", op))
		}
	}

	return errors.Join(errs...)
}
