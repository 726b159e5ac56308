package expr

import "fmt"

// ErrorKind tags why an expression could not be parsed.
type ErrorKind string

const (
	KindEmptyInput           ErrorKind = "empty_input"
	KindUnsupportedOperation ErrorKind = "unsupported_operation"
	KindInvalidFormat        ErrorKind = "invalid_format"
	KindOutOfRange           ErrorKind = "out_of_range"
)

// User-facing messages, phrased for direct display in the product.
var kindMessages = map[ErrorKind]string{
	KindEmptyInput:           "Digite uma operação para classificar.",
	KindUnsupportedOperation: "Operação não suportada: use apenas +, −, × ou ÷ entre números inteiros.",
	KindInvalidFormat:        "Formato inválido. Exemplos: 5 × 14, 48 + 37, 7 + 8 + 3.",
	KindOutOfRange:           fmt.Sprintf("Os números devem estar entre 0 e %d.", MaxOperand),
}

// Sentinels for errors.Is checks. A *ParseError matches the sentinel of its kind.
var (
	ErrEmptyInput           = &ParseError{Kind: KindEmptyInput}
	ErrUnsupportedOperation = &ParseError{Kind: KindUnsupportedOperation}
	ErrInvalidFormat        = &ParseError{Kind: KindInvalidFormat}
	ErrOutOfRange           = &ParseError{Kind: KindOutOfRange}
)

// ParseError describes why raw input was rejected. Parsing stops at the
// first applicable error; there is no partial result.
type ParseError struct {
	Kind    ErrorKind
	Message string // display-ready text
	Input   string // original input
}

func newParseError(kind ErrorKind, input string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: kindMessages[kind],
		Input:   input,
	}
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
