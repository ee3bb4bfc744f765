package yalisp

import "errors"

var (
	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrInvalidString = errors.New("invalid string literal")
)

func Int(v int32) *Node {
	return &Node{Kind: KindInt, Int: v}
}

func Str(s string) *Node {
	return &Node{Kind: KindString, Text: s}
}

func Symbol(s string) *Node {
	return &Node{Kind: KindSymbol, Text: s}
}

func List(children ...*Node) *Node {
	if children == nil {
		children = make([]*Node, 0)
	}
	return &Node{Kind: KindList, List: children}
}

// NewSymbol returns a symbol node that prints back as the same symbol.
func NewSymbol(s string) (n *Node, err error) {
	if s == "" {
		return nil, ErrInvalidSymbol
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 0 && (c == '(' || c == '"' || isDigit(c)) {
			return nil, ErrInvalidSymbol
		}
		if !isSymbolRemainder(c) {
			return nil, ErrInvalidSymbol
		}
	}
	return Symbol(s), nil
}

func MustSymbol(s string) (n *Node) {
	var err error
	n, err = NewSymbol(s)
	if err != nil {
		panic(err)
	}
	return
}

// NewStr returns a string node that prints back as the same string.
func NewStr(s string) (n *Node, err error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == 0 {
			return nil, ErrInvalidString
		}
	}
	return Str(s), nil
}
