package catalog

import "github.com/abhisek/opclass/internal/expr"

// seedModules defines the five modules in display order.
var seedModules = []Module{
	{ID: ModuleFundacional, Name: "Fundacional"},
	{ID: ModuleConsolidacao, Name: "Consolidação"},
	{ID: ModuleAutomacao, Name: "Automação"},
	{ID: ModuleRitmo, Name: "Ritmo"},
	{ID: ModulePrecisao, Name: "Precisão"},
}

// seedConcepts defines the 24 concepts.
// 1–8 Fundacional (with lessons), 9–15 Consolidação, 16–24 Pro.
var seedConcepts = []Concept{
	// Fundacional (8)
	{
		ID:          1,
		Name:        "Multiplicação por 5",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{5},
		Weight:      1.00,
		Description: "Multiplicar por 10 e dividir por 2",
	},
	{
		ID:          2,
		Name:        "Soma com transporte",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpAddition,
		Weight:      1.00,
		Description: "Completar a dezena e somar o restante",
	},
	{
		ID:          3,
		Name:        "Multiplicação por 9",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{9},
		Weight:      1.00,
		Description: "Multiplicar por 10 e subtrair o número",
	},
	{
		ID:          4,
		Name:        "Divisão exata por 2",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpDivision,
		KeyOperands: []int{2},
		Weight:      1.02,
		Description: "Metade de cada ordem, da esquerda para a direita",
	},
	{
		ID:          5,
		Name:        "Multiplicação por 2 e 4",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{2, 4},
		Weight:      0.98,
		Description: "Dobrar uma ou duas vezes",
	},
	{
		ID:          6,
		Name:        "Soma de três parcelas",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpAddition,
		Weight:      1.00,
		Description: "Agrupar parcelas que formam dezenas",
	},
	{
		ID:          7,
		Name:        "Subtração sem empréstimo",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpSubtraction,
		Weight:      0.97,
		Description: "Subtrair ordem a ordem",
	},
	{
		ID:          8,
		Name:        "Multiplicação por 10 e 100",
		ModuleID:    ModuleFundacional,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{10, 100},
		Weight:      1.05,
		Description: "Deslocar os algarismos uma ou duas ordens",
	},

	// Consolidação (7)
	{
		ID:          9,
		Name:        "Subtração com empréstimo",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpSubtraction,
		Weight:      1.00,
		Description: "Subtrair por partes atravessando a dezena",
	},
	{
		ID:          10,
		Name:        "Multiplicação por 3 e 6",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{3, 6},
		Weight:      0.98,
		Description: "Triplicar e dobrar o triplo",
	},
	{
		ID:          11,
		Name:        "Divisão por 3 e 6",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpDivision,
		KeyOperands: []int{3, 6},
		Weight:      1.00,
		Description: "Dividir em partes múltiplas do divisor",
	},
	{
		ID:          12,
		Name:        "Multiplicação por 7 e 8",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{7, 8},
		Weight:      0.98,
		Description: "Partir em 5 + 2 ou dobrar três vezes",
	},
	{
		ID:          13,
		Name:        "Divisão por 4 e 5",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpDivision,
		KeyOperands: []int{4, 5},
		Weight:      1.00,
		Description: "Metade da metade, ou dobrar e dividir por 10",
	},
	{
		ID:          14,
		Name:        "Multiplicação por 11",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpMultiplication,
		KeyOperands: []int{11},
		Weight:      1.03,
		Description: "Somar algarismos vizinhos",
	},
	{
		ID:          15,
		Name:        "Divisão por 7 e 8",
		ModuleID:    ModuleConsolidacao,
		Operation:   expr.OpDivision,
		KeyOperands: []int{7, 8},
		Weight:      1.00,
		Description: "Estimar pelo múltiplo mais próximo",
	},

	// Automação (3)
	{
		ID:          16,
		Name:        "Reconhecimento de padrões",
		ModuleID:    ModuleAutomacao,
		Operation:   expr.OpMultiplication,
		Weight:      1.00,
		Description: "Reconhecer fatores como 25 = 100 ÷ 4",
	},
	{
		ID:          17,
		Name:        "Decomposição aditiva",
		ModuleID:    ModuleAutomacao,
		Operation:   expr.OpMultiplication,
		Weight:      1.00,
		Description: "Partir um fator em parcelas simples, como 15 = 10 + 5",
	},
	{
		ID:          18,
		Name:        "Complementos decimais",
		ModuleID:    ModuleAutomacao,
		Operation:   expr.OpAddition,
		Weight:      0.97,
		Description: "Juntar parcelas cujas unidades completam 10",
	},

	// Ritmo (3)
	{
		ID:          19,
		Name:        "Compensação na subtração",
		ModuleID:    ModuleRitmo,
		Operation:   expr.OpSubtraction,
		Weight:      1.00,
		Description: "Arredondar para a dezena exata e compensar",
	},
	{
		ID:          20,
		Name:        "Propriedade distributiva",
		ModuleID:    ModuleRitmo,
		Operation:   expr.OpMultiplication,
		Weight:      0.95,
		Description: "Multiplicar dezenas e unidades separadamente",
	},
	{
		ID:          21,
		Name:        "Decomposição posicional",
		ModuleID:    ModuleRitmo,
		Operation:   expr.OpMultiplication,
		Weight:      0.95,
		Description: "Multiplicar cada ordem do número grande",
	},

	// Precisão (3)
	{
		ID:          22,
		Name:        "Estimativa e arredondamento",
		ModuleID:    ModulePrecisao,
		Operation:   expr.OpMultiplication,
		Weight:      1.00,
		Description: "Arredondar, calcular e ajustar",
	},
	{
		ID:          23,
		Name:        "Verificação por noves fora",
		ModuleID:    ModulePrecisao,
		Operation:   expr.OpMultiplication,
		Weight:      1.00,
		Description: "Conferir o resultado pela soma dos algarismos",
	},
	{
		ID:          24,
		Name:        "Cálculo mental encadeado",
		ModuleID:    ModulePrecisao,
		Weight:      1.00,
		Description: "Encadear várias operações sem anotar",
	},
}

// keyMultipliers maps a multiplier to the concept that teaches it.
var keyMultipliers = map[int]int{
	2: 5, 3: 10, 4: 5, 5: 1, 6: 10, 7: 12, 8: 12, 9: 3, 10: 8, 11: 14, 100: 8,
}

// keyDivisors maps a divisor to the concept that teaches it.
var keyDivisors = map[int]int{
	2: 4, 3: 11, 4: 13, 5: 13, 6: 11, 7: 15, 8: 15,
}

// fallbackConcepts is the generic recommendation per operator when no rule
// matches.
var fallbackConcepts = map[expr.Operator]int{
	expr.OpMultiplication: 16,
	expr.OpAddition:       2,
	expr.OpSubtraction:    9,
	expr.OpDivision:       13,
}
