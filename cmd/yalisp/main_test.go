package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alttpo/yalisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRepl(t *testing.T) {
	out, err := execute(t, "(+ 1 2)\n(concat \"a\" 1)\n")
	require.NoError(t, err)
	assert.Equal(t, "3\nError: Non-string argument to concat\n", out)

	out, err = execute(t, "(+ 1 2) x\n", "repl", "--strict", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "Error: Unexpected trailing input\n", out)
}

func TestRepl_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yalisp.yml")
	require.NoError(t, os.WriteFile(path, []byte("buffer_size: 4\n"), 0o600))

	out, err := execute(t, "(+ 1 2)\n12\n", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Error: input line exceeds 4 bytes\n12\n", out)

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestEval(t *testing.T) {
	out, err := execute(t, "", "eval", "(- 10 1 2)", `(concat "a" "b" "c")`)
	require.NoError(t, err)
	assert.Equal(t, "7\n\"abc\"\n", out)

	out, err = execute(t, "", "eval", "(- )", "1")
	require.ErrorIs(t, err, errLinesFailed)
	assert.Equal(t, "Error: Operator - requires at least 1 argument\n1\n", out)
}

func TestParse(t *testing.T) {
	out, err := execute(t, "", "parse", "(+ 1 2) extra")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)\t7\n", out)

	_, err = execute(t, "", "parse", `"abc`)
	require.ErrorIs(t, err, yalisp.ErrUnterminatedString)
}

func TestLua(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
local yalisp = require("yalisp")
local v, err = yalisp.eval("(+ (+ 1 2) (- 5 1))")
assert(err == nil and v == 7, "unexpected result")
local _, err = yalisp.eval("foo")
assert(err.err == "Cannot evaluate a standalone symbol", err.err)
`), 0o600))

	_, err := execute(t, "", "lua", path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`assert(require("yalisp").eval("1") == 2, "boom")`), 0o600))
	_, err = execute(t, "", "lua", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_ExitCode(t *testing.T) {
	assert.Equal(t, 0, run(context.Background(), []string{"eval", "1"}))
	assert.Equal(t, 1, run(context.Background(), []string{"eval", "()"}))
	assert.Equal(t, 1, run(context.Background(), []string{"no-such-command"}))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, os.ErrClosed
}

func TestEval_WriteError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"eval", "(+ 1 2)"})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(failingWriter{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, os.ErrClosed)
	assert.Contains(t, err.Error(), "write result")
}
