// yalisp is the interactive shell for YALisp.
//
//	yalisp                       # read-eval-print loop on stdin
//	yalisp eval '(+ 1 2)'        # evaluate arguments, one per line
//	yalisp parse '(+ 1 2) rest'  # print the parsed tree and cursor
//	yalisp lua script.lua        # run a Lua script with require("yalisp")
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		// eval has already printed the failing lines
		if !errors.Is(err, errLinesFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
