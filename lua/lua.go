// Package lua exposes the interpreter to Lua scripts as the "yalisp" module.
//
//	local yalisp = require("yalisp")
//	local v, err = yalisp.eval("(+ 1 2)")          -- 3, nil
//	local n, i, err = yalisp.parse("(f 1) rest")   -- {list={...}}, 6, nil
//	local s = yalisp.format({list={{symbol="+"}, {int=1}}})  -- "(+ 1)"
//
// Trees are tables with exactly one of the keys int, string, symbol or list.
// Errors are returned as a table {err=<message>, kind="parse"|"eval"}.
package lua

import (
	"errors"
	"fmt"
	"math"

	"github.com/alttpo/yalisp"
	lua "github.com/yuin/gopher-lua"
)

const ModuleName = "yalisp"

var exports = map[string]lua.LGFunction{
	"parse":  parse,
	"eval":   eval,
	"format": format,
}

// Preload makes require("yalisp") available in L.
func Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, Loader)
}

// Loader is the lua.LGFunction that builds the module table.
func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), exports)
	L.Push(mod)
	return 1
}

func errorTable(L *lua.LState, err error) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("err", lua.LString(err.Error()))

	var parseErr *yalisp.ParseError
	if errors.As(err, &parseErr) {
		t.RawSetString("kind", lua.LString("parse"))
	} else {
		t.RawSetString("kind", lua.LString("eval"))
	}
	return t
}

// parse(line) returns the tree of the first expression, the 1-based index
// of the first unconsumed byte, and an error table or nil.
func parse(L *lua.LState) int {
	line := L.CheckString(1)

	n, pos, err := yalisp.ParseString(line)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LNil)
		L.Push(errorTable(L, err))
		return 3
	}

	L.Push(ToTable(L, n))
	L.Push(lua.LNumber(pos + 1))
	L.Push(lua.LNil)
	return 3
}

// eval(line) or eval(tree) returns the value and an error table or nil.
func eval(L *lua.LState) int {
	var v yalisp.Value
	var err error

	switch arg := L.CheckAny(1).(type) {
	case lua.LString:
		v, err = yalisp.Interpret(yalisp.LenientParser, []byte(arg))
	case *lua.LTable:
		var n *yalisp.Node
		n, err = FromTable(arg)
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		v, err = yalisp.Eval(n)
	default:
		L.TypeError(1, lua.LTString)
		return 0
	}

	if err != nil {
		L.Push(lua.LNil)
		L.Push(errorTable(L, err))
		return 2
	}
	L.Push(ToValue(v))
	L.Push(lua.LNil)
	return 2
}

// format(tree) returns the source text of a tree.
func format(L *lua.LState) int {
	n, err := FromTable(L.CheckTable(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LString(n.String()))
	return 1
}

// ToValue converts an evaluation result to a Lua number or string.
func ToValue(v yalisp.Value) lua.LValue {
	if v.Kind == yalisp.ValueString {
		return lua.LString(v.Str)
	}
	return lua.LNumber(v.Int)
}

// ToTable converts a syntax tree to nested Lua tables.
func ToTable(L *lua.LState, n *yalisp.Node) *lua.LTable {
	t := L.NewTable()
	switch n.Kind {
	case yalisp.KindInt:
		t.RawSetString("int", lua.LNumber(n.Int))
	case yalisp.KindString:
		t.RawSetString("string", lua.LString(n.Text))
	case yalisp.KindSymbol:
		t.RawSetString("symbol", lua.LString(n.Text))
	case yalisp.KindList:
		list := L.CreateTable(len(n.List), 0)
		for _, c := range n.List {
			list.Append(ToTable(L, c))
		}
		t.RawSetString("list", list)
	}
	return t
}

// FromTable converts nested Lua tables back to a syntax tree. Symbols and
// strings are checked so the tree prints back as valid source. A table that
// contains itself is rejected.
func FromTable(t *lua.LTable) (*yalisp.Node, error) {
	return fromTable(t, map[*lua.LTable]bool{})
}

// fromTable tracks the tables on the current path in open; a table shared
// by two siblings is fine.
func fromTable(t *lua.LTable, open map[*lua.LTable]bool) (*yalisp.Node, error) {
	if open[t] {
		return nil, errors.New("list is cyclic")
	}
	if v := t.RawGetString("int"); v != lua.LNil {
		f, ok := v.(lua.LNumber)
		if !ok || float64(f) != math.Trunc(float64(f)) || f < math.MinInt32 || f > math.MaxInt32 {
			return nil, fmt.Errorf("int must be a 32-bit integer, got %s", v.String())
		}
		return yalisp.Int(int32(f)), nil
	}
	if v := t.RawGetString("string"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("string must be a string, got %s", v.Type())
		}
		return yalisp.NewStr(string(s))
	}
	if v := t.RawGetString("symbol"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("symbol must be a string, got %s", v.Type())
		}
		return yalisp.NewSymbol(string(s))
	}
	if v := t.RawGetString("list"); v != lua.LNil {
		lt, ok := v.(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("list must be a table, got %s", v.Type())
		}
		if open[lt] {
			return nil, errors.New("list is cyclic")
		}
		open[t], open[lt] = true, true
		defer delete(open, t)
		defer delete(open, lt)

		children := make([]*yalisp.Node, 0, lt.Len())
		for i := 1; i <= lt.Len(); i++ {
			ct, ok := lt.RawGetInt(i).(*lua.LTable)
			if !ok {
				return nil, fmt.Errorf("list item %d must be a table", i)
			}
			c, err := fromTable(ct, open)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return yalisp.List(children...), nil
	}
	return nil, errors.New("node table needs one of int, string, symbol or list")
}
