package cmd_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/cmd"
)

var update = flag.Bool("update", false, "Update testscript snapshots")

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"themecheck": func() {
			cli, err := cmd.Build()
			if err == nil {
				err = cli.Execute(context.Background())
			}

			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1) //nolint:revive // redundant-test-main-exit, this is testscript main
			}
		},
	})
}

func TestSmoke(t *testing.T) {
	_, err := cmd.Build()
	test.Ok(t, err)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		UpdateScripts:       *update,
		RequireExplicitExec: true,
		RequireUniqueNames:  true,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"expand": Expand,
		},
	})
}

// Expand expands environment variables in the given files and saves the new contents in place,
// reports that refer to files by absolute path use it to point at $WORK.
//
// Usage:
//
//	expand <files(s)...>
//
// It cannot be negated.
func Expand(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! expand")
	}

	if len(args) < 1 {
		ts.Fatalf("usage: expand <file(s)...>")
	}

	for _, file := range args {
		file = ts.MkAbs(file)
		str := ts.ReadFile(file)

		str = os.Expand(str, func(key string) string {
			return ts.Getenv(key)
		})

		err := os.WriteFile(file, []byte(str), 0o644)
		ts.Check(err)
	}
}
