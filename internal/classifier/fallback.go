package classifier

import (
	"fmt"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/expr"
)

const genericFallback = "Nenhuma técnica específica identificada. Pratique cálculo mental com operações parecidas."

// fallbackMessage recommends the base concept for the operator.
func fallbackMessage(op expr.Operator) string {
	c, ok := catalog.FallbackConcept(op)
	if !ok {
		return genericFallback
	}
	return fmt.Sprintf("Nenhuma técnica específica identificada. Recomendação geral: %s (conceito %d).", c.Name, c.ID)
}
