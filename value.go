package yalisp

import "strconv"

type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "int"
	case ValueString:
		return "string"
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the result of evaluating a Node.
type Value struct {
	Kind ValueKind
	Int  int32
	Str  string
}

func IntValue(v int32) Value { return Value{Kind: ValueInt, Int: v} }

func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// String renders the value for display. Strings are quoted but embedded
// quotes are not escaped, so the output does not always parse back.
func (v Value) String() string {
	if v.Kind == ValueString {
		return `"` + v.Str + `"`
	}
	return strconv.FormatInt(int64(v.Int), 10)
}
