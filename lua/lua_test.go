package lua

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/alttpo/yalisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/gopher-lua"
)

func newState(t *testing.T) *lua.LState {
	l := lua.NewState(lua.Options{})
	t.Cleanup(l.Close)
	Preload(l)
	require.NoError(t, l.DoString(`yalisp = require("yalisp")`))
	return l
}

func TestLuaParse(t *testing.T) {
	type test struct {
		name    string
		n       *yalisp.Node
		nstr    string
		wantErr string
		wantN   string
		wantI   lua.LValue
	}
	var cases = []test{
		{
			name:  "(+ 1 2)",
			n:     yalisp.List(yalisp.MustSymbol("+"), yalisp.Int(1), yalisp.Int(2)),
			wantN: `{list={{symbol="+"}, {int=1}, {int=2}}}`,
			wantI: lua.LNumber(8),
		},
		{
			name: `(concat "a" (f))`,
			n: yalisp.List(
				yalisp.MustSymbol("concat"),
				yalisp.Str("a"),
				yalisp.List(yalisp.MustSymbol("f")),
			),
			wantN: `{list={{symbol="concat"}, {string="a"}, {list={{symbol="f"}}}}}`,
			wantI: lua.LNumber(17),
		},
		{
			name:  "()",
			n:     yalisp.List(),
			wantN: `{list={}}`,
			wantI: lua.LNumber(3),
		},
		{
			name:  "trailing input",
			nstr:  "(f) rest",
			wantN: `{list={{symbol="f"}}}`,
			wantI: lua.LNumber(4),
		},
		{
			name:    "(",
			nstr:    "(",
			wantErr: "Unmatched '(' in input",
			wantN:   "nil",
			wantI:   lua.LNil,
		},
		{
			name:    "unterminated",
			nstr:    `"abc`,
			wantErr: "Unterminated string literal in input",
			wantN:   "nil",
			wantI:   lua.LNil,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			l := newState(t)

			nstr := tt.nstr
			if tt.n != nil {
				nstr = tt.n.String()
			}

			err := l.CallByParam(
				lua.P{
					Fn:      l.GetField(l.GetGlobal("yalisp"), "parse"),
					NRet:    3,
					Protect: true,
				},
				lua.LString(nstr),
			)
			if err != nil {
				t.Fatalf("glua error: %v", err)
			}

			n, i, perr := l.Get(-3), l.Get(-2), l.Get(-1)
			l.Pop(3)

			errStr := ""
			if perr != lua.LNil {
				errStr = string(perr.(*lua.LTable).RawGetString("err").(lua.LString))
				assert.Equal(t, lua.LString("parse"), perr.(*lua.LTable).RawGetString("kind"))
			}
			if errStr != tt.wantErr {
				t.Fatalf("want err='%v' got '%v'", tt.wantErr, errStr)
			}

			require.NoError(t, l.DoString("return "+tt.wantN))
			want := l.Get(-1)
			l.Pop(1)
			assert.Equal(t, fmtLua(want), fmtLua(n))
			assert.Equal(t, tt.wantI, i)
		})
	}
}

func TestLuaEval(t *testing.T) {
	cases := []struct {
		name     string
		script   string
		wantV    lua.LValue
		wantErr  string
		wantKind string
	}{
		{name: "sum", script: `return yalisp.eval("(+ 1 2 3)")`, wantV: lua.LNumber(6)},
		{name: "concat", script: `return yalisp.eval('(concat "a" "b")')`, wantV: lua.LString("ab")},
		{name: "negative", script: `return yalisp.eval("(- 1 2)")`, wantV: lua.LNumber(-1)},
		{
			name:   "tree",
			script: `return yalisp.eval({list={{symbol="-"}, {int=10}, {int=3}}})`,
			wantV:  lua.LNumber(7),
		},
		{
			name:     "eval error",
			script:   `return yalisp.eval("(frobnicate 1)")`,
			wantV:    lua.LNil,
			wantErr:  "Unknown operator",
			wantKind: "eval",
		},
		{
			name:     "parse error",
			script:   `return yalisp.eval("(+ 1")`,
			wantV:    lua.LNil,
			wantErr:  "Unmatched '(' in input",
			wantKind: "parse",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			l := newState(t)
			require.NoError(t, l.DoString(tt.script))

			v, perr := l.Get(-2), l.Get(-1)
			l.Pop(2)

			assert.Equal(t, tt.wantV, v)
			if tt.wantErr == "" {
				assert.Equal(t, lua.LNil, perr)
				return
			}
			et, ok := perr.(*lua.LTable)
			require.True(t, ok, "error is %s", perr.Type())
			assert.Equal(t, lua.LString(tt.wantErr), et.RawGetString("err"))
			assert.Equal(t, lua.LString(tt.wantKind), et.RawGetString("kind"))
		})
	}
}

func TestLuaFormat(t *testing.T) {
	l := newState(t)

	require.NoError(t, l.DoString(`return yalisp.format({list={{symbol="concat"}, {string="a b"}, {list={}}, {int=-4}}})`))
	assert.Equal(t, lua.LString(`(concat "a b" () -4)`), l.Get(-1))
	l.Pop(1)

	// parse and format round trip
	require.NoError(t, l.DoString(`return yalisp.format((yalisp.parse("(+ (- 5 1) 2)")))`))
	assert.Equal(t, lua.LString("(+ (- 5 1) 2)"), l.Get(-1))
	l.Pop(1)

	// a node shared by siblings is not a cycle
	require.NoError(t, l.DoString(`local one = {int=1}; return yalisp.format({list={{symbol="+"}, one, one}})`))
	assert.Equal(t, lua.LString("(+ 1 1)"), l.Get(-1))
	l.Pop(1)

	for _, bad := range []string{
		`yalisp.format({symbol="a b"})`,
		`yalisp.format({string='say "hi"'})`,
		`yalisp.format({int=1.5})`,
		`yalisp.format({list={1}})`,
		`yalisp.format({})`,
		`local t = {list={}}; t.list[1] = t; yalisp.format(t)`,
		`local l = {}; l[1] = {list=l}; yalisp.eval({list=l})`,
	} {
		err := l.DoString(bad)
		assert.Error(t, err, bad)
	}
}

func TestFromTable(t *testing.T) {
	l := newState(t)
	n, err := FromTable(ToTable(l, yalisp.List(yalisp.Symbol("+"), yalisp.Int(-2147483648), yalisp.Str(""))))
	require.NoError(t, err)
	assert.Equal(t, `(+ -2147483648 "")`, n.String())

	big := l.NewTable()
	big.RawSetString("int", lua.LNumber(1<<31))
	_, err = FromTable(big)
	assert.True(t, strings.Contains(err.Error(), "32-bit"))

	self := l.NewTable()
	list := l.NewTable()
	list.Append(self)
	self.RawSetString("list", list)
	_, err = FromTable(self)
	assert.EqualError(t, err, "list is cyclic")
}

// fmtLua renders v with table keys sorted, so tables built by Lua source
// and by ToTable compare equal when their contents do.
func fmtLua(v lua.LValue) string {
	switch v := v.(type) {
	case nil:
		return ""
	case *lua.LTable:
		var fields []string
		v.ForEach(func(key, val lua.LValue) {
			fields = append(fields, fmtLua(key)+"="+fmtLua(val))
		})
		sort.Strings(fields)
		return "{" + strings.Join(fields, ",") + "}"
	case lua.LString:
		return fmt.Sprintf("%q", string(v))
	default:
		return v.String()
	}
}
