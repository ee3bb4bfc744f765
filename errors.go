package yalisp

import "strconv"

// ParseError is returned by the parser. Parse errors are fatal for the line
// being parsed; only the first one is reported.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

var (
	ErrUnmatchedOpenParen   = &ParseError{Msg: "Unmatched '(' in input"}
	ErrUnterminatedString   = &ParseError{Msg: "Unterminated string literal in input"}
	ErrUnexpectedEndOfInput = &ParseError{Msg: "Unexpected end of input"}
	ErrTrailingInput        = &ParseError{Msg: "Unexpected trailing input"}
)

type EvalErrorKind int

const (
	StandaloneSymbol EvalErrorKind = iota
	EmptyList
	OperatorNotSymbol
	TypeMismatch
	UnknownOperator
	UnknownNodeKind
	Arity
)

// EvalError is returned by Eval. Operator and Expected are only set for
// TypeMismatch and Arity.
type EvalError struct {
	Kind     EvalErrorKind
	Operator string
	Expected ValueKind
	Min      int
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case StandaloneSymbol:
		return "Cannot evaluate a standalone symbol"
	case EmptyList:
		return "Cannot evaluate an empty list"
	case OperatorNotSymbol:
		return "First element of a list must be a symbol (operator)"
	case TypeMismatch:
		if e.Expected == ValueString {
			return "Non-string argument to " + e.Operator
		}
		// + and - report the same text; Operator tells them apart.
		return "Non-integer argument to +"
	case UnknownOperator:
		return "Unknown operator"
	case Arity:
		return "Operator " + e.Operator + " requires at least " + strconv.Itoa(e.Min) + " argument"
	}
	return "Unknown AST node type"
}

// Is reports whether target is an *EvalError of the same kind, so the
// sentinels below can be used with errors.Is.
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == e.Kind
}

var (
	ErrStandaloneSymbol  = &EvalError{Kind: StandaloneSymbol}
	ErrEmptyList         = &EvalError{Kind: EmptyList}
	ErrOperatorNotSymbol = &EvalError{Kind: OperatorNotSymbol}
	ErrTypeMismatch      = &EvalError{Kind: TypeMismatch}
	ErrUnknownOperator   = &EvalError{Kind: UnknownOperator}
	ErrUnknownNodeKind   = &EvalError{Kind: UnknownNodeKind}
	ErrArity             = &EvalError{Kind: Arity}
)
