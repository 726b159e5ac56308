package expr

import "encoding/json"

type parsedExpressionJSON struct {
	Operands []int    `json:"operands"`
	Operator Operator `json:"operator"`
	Raw      string   `json:"raw"`
}

// MarshalJSON renders the expression as {"operands", "operator", "raw"}.
func (p ParsedExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(parsedExpressionJSON{
		Operands: p.Operands(),
		Operator: p.operator,
		Raw:      p.raw,
	})
}
