package yalisp

import "strings"

// builtin evaluates the arguments of a list whose operator is op.
type builtin func(op string, args []*Node) (Value, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"+":      evalAdd,
		"-":      evalSubtract,
		"concat": evalConcat,
	}
}

// Eval evaluates n. Arguments are evaluated left to right and the first
// error is returned as is; no partial result is returned with it.
func Eval(n *Node) (Value, error) {
	if n == nil {
		return Value{}, ErrUnknownNodeKind
	}

	switch n.Kind {
	case KindInt:
		return IntValue(n.Int), nil
	case KindString:
		return StringValue(n.Text), nil
	case KindSymbol:
		return Value{}, ErrStandaloneSymbol
	case KindList:
		return evalList(n)
	}

	return Value{}, ErrUnknownNodeKind
}

func evalList(n *Node) (Value, error) {
	if len(n.List) == 0 {
		return Value{}, ErrEmptyList
	}

	op := n.List[0]
	if op == nil || op.Kind != KindSymbol {
		return Value{}, ErrOperatorNotSymbol
	}

	fn, ok := builtins[op.Text]
	if !ok {
		return Value{}, ErrUnknownOperator
	}
	return fn(op.Text, n.List[1:])
}

// evalInt evaluates n and requires an integer result.
func evalInt(op string, n *Node) (int32, error) {
	v, err := Eval(n)
	if err != nil {
		return 0, err
	}
	if v.Kind != ValueInt {
		return 0, &EvalError{Kind: TypeMismatch, Operator: op, Expected: ValueInt}
	}
	return v.Int, nil
}

func evalAdd(op string, args []*Node) (Value, error) {
	var sum int32
	for _, arg := range args {
		i, err := evalInt(op, arg)
		if err != nil {
			return Value{}, err
		}
		sum += i
	}
	return IntValue(sum), nil
}

func evalSubtract(op string, args []*Node) (Value, error) {
	if len(args) == 0 {
		return Value{}, &EvalError{Kind: Arity, Operator: op, Min: 1}
	}

	diff, err := evalInt(op, args[0])
	if err != nil {
		return Value{}, err
	}
	for _, arg := range args[1:] {
		i, err := evalInt(op, arg)
		if err != nil {
			return Value{}, err
		}
		diff -= i
	}
	return IntValue(diff), nil
}

func evalConcat(op string, args []*Node) (Value, error) {
	parts := make([]string, 0, len(args))
	size := 0
	for _, arg := range args {
		v, err := Eval(arg)
		if err != nil {
			return Value{}, err
		}
		if v.Kind != ValueString {
			return Value{}, &EvalError{Kind: TypeMismatch, Operator: op, Expected: ValueString}
		}
		parts = append(parts, v.Str)
		size += len(v.Str)
	}

	var sb strings.Builder
	sb.Grow(size)
	for _, s := range parts {
		sb.WriteString(s)
	}
	return StringValue(sb.String()), nil
}

// Interpret parses the first expression of line with p and evaluates it.
func Interpret(p Parser, line []byte) (Value, error) {
	n, err := p.ParseLine(line)
	if err != nil {
		return Value{}, err
	}
	return Eval(n)
}
