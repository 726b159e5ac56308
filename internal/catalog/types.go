package catalog

import (
	"slices"

	"github.com/abhisek/opclass/internal/expr"
)

// Version identifies the revision of the rule tables. Persisted classifications
// carry it so history can be compared across catalogue changes.
const Version = "v1.0.0"

// ProThreshold is the highest concept ID available on the free plan.
const ProThreshold = 15

// LastLessonConcept is the highest concept ID that has lesson content.
const LastLessonConcept = 8

// ModuleID identifies one of the five pedagogical modules.
type ModuleID int

const (
	ModuleFundacional  ModuleID = 1
	ModuleConsolidacao ModuleID = 2
	ModuleAutomacao    ModuleID = 3
	ModuleRitmo        ModuleID = 4
	ModulePrecisao     ModuleID = 5
)

// Module groups related concepts.
type Module struct {
	ID   ModuleID
	Name string
}

// Concept is one catalogued mental-math technique.
type Concept struct {
	ID       int
	Name     string
	ModuleID ModuleID

	// Operation is the concept's primary operation family. Empty for
	// concepts that span several operations.
	Operation expr.Operator

	// KeyOperands are the literal values that make a direct match exact.
	KeyOperands []int

	// Weight is the specificity factor applied during ranking.
	Weight float64

	Description string
}

// IsPro reports whether the concept requires a Pro plan.
func (c Concept) IsPro() bool {
	return c.ID > ProThreshold
}

// HasLesson reports whether lesson content exists for the concept.
func (c Concept) HasLesson() bool {
	return c.ID >= 1 && c.ID <= LastLessonConcept
}

// IsKey reports whether n is one of the concept's key operands.
func (c Concept) IsKey(n int) bool {
	return slices.Contains(c.KeyOperands, n)
}

// Lesson tiers.
const (
	LessonEstrutura  = 1
	LessonCompressao = 2
	LessonRitmo      = 3
)

var lessonNames = [...]string{
	LessonEstrutura:  "Estrutura",
	LessonCompressao: "Compressão",
	LessonRitmo:      "Ritmo e Transferência",
}

// LessonName returns the display name of a lesson tier, or "" for an
// unknown tier.
func LessonName(n int) string {
	if n < LessonEstrutura || n > LessonRitmo {
		return ""
	}
	return lessonNames[n]
}
