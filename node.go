package yalisp

import (
	"strconv"
	"strings"
)

type Kind int

const (
	KindInt Kind = iota
	KindSymbol
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindList:
		return "list"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one syntax tree node. Int is set for KindInt, Text for KindSymbol
// and KindString, List for KindList. A list owns its children; nodes are
// never shared between trees.
type Node struct {
	Kind
	Int  int32
	Text string
	List []*Node
}

func (n *Node) String() string {
	var sb strings.Builder
	n.appendToBuilder(&sb)
	return sb.String()
}

func (n *Node) appendToBuilder(sb *strings.Builder) {
	if n == nil {
		return
	}

	switch n.Kind {
	case KindList:
		sb.WriteByte('(')
		for i, c := range n.List {
			c.appendToBuilder(sb)
			if i < len(n.List)-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte(')')
	case KindInt:
		sb.WriteString(strconv.FormatInt(int64(n.Int), 10))
	case KindString:
		sb.WriteByte('"')
		sb.WriteString(n.Text)
		sb.WriteByte('"')
	case KindSymbol:
		sb.WriteString(n.Text)
	}
}
