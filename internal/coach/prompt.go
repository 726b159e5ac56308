package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/opclass/internal/catalog"
	"github.com/abhisek/opclass/internal/classifier"
	"github.com/abhisek/opclass/internal/llm"
)

const maxSchemaSteps = 6

const systemPrompt = `Você é um treinador de cálculo mental para adultos brasileiros.

Regras:
- Explique como resolver a expressão usando exatamente a técnica indicada.
- Escreva em português do Brasil, frases curtas, tom direto.
- Cada passo é uma única operação mental com o resultado parcial.
- Use os números da expressão; não invente outra expressão.
- Use × para multiplicação e ÷ para divisão. Sem LaTeX.
- O campo "check" traz uma verificação rápida do resultado final.`

// WalkthroughSchema constrains the model output.
var WalkthroughSchema = &llm.Schema{
	Name:        "opclass-walkthrough",
	Description: "Passo a passo de cálculo mental para uma expressão",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Nome curto da técnica aplicada",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    maxSchemaSteps,
				"description": "Passos mentais em ordem, um por item",
			},
			"check": map[string]any{
				"type":        "string",
				"description": "Verificação rápida do resultado",
			},
		},
		"required":             []any{"title", "steps", "check"},
		"additionalProperties": false,
	},
}

func buildUserMessage(res classifier.Result, concept catalog.Concept) string {
	top, _ := res.Top()

	var b strings.Builder
	fmt.Fprintf(&b, "Expressão: %s\n", res.Expression)
	fmt.Fprintf(&b, "Técnica: %s\n", concept.Name)
	fmt.Fprintf(&b, "Módulo: %s\n", catalog.ModuleName(concept.ModuleID))
	if concept.Description != "" {
		fmt.Fprintf(&b, "Descrição: %s\n", concept.Description)
	}
	fmt.Fprintf(&b, "Por que esta técnica: %s\n", top.Reason)
	if l := res.RecommendedLesson; l != nil {
		fmt.Fprintf(&b, "Nível: %s\n", l.LessonName)
	}
	fmt.Fprintf(&b, "Máximo de passos: %d", maxSchemaSteps)
	return b.String()
}
