// Command no_setenv_in_tests reports process environment mutation in test
// files.
//
//	(cd tools/linters && go build -o ../../bin/no_setenv_in_tests .)
//	./bin/no_setenv_in_tests ./...
package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/singlechecker"
)

const doc = `no_setenv_in_tests: forbid os.Setenv, os.Unsetenv and t.Setenv in tests

Configuration is read once through platformconfig.LoadFromEnv. Tests build
their configuration with platformconfig.LoadFromMap instead, so they can run
in parallel without sharing process environment.`

var Analyzer = &analysis.Analyzer{
	Name: "no_setenv_in_tests",
	Doc:  doc,
	Run:  run,
}

var forbidden = map[string]map[string]bool{
	"os":      {"Setenv": true, "Unsetenv": true, "Clearenv": true},
	"testing": {"Setenv": true},
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		if !strings.HasSuffix(pass.Fset.Position(file.Package).Filename, "_test.go") {
			continue
		}
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if !ok || fn.Pkg() == nil {
				return true
			}
			if forbidden[fn.Pkg().Path()][fn.Name()] {
				pass.Reportf(call.Pos(), "%s.%s is forbidden in tests; build config with platformconfig.LoadFromMap", fn.Pkg().Name(), fn.Name())
			}
			return true
		})
	}
	return nil, nil
}

func main() {
	singlechecker.Main(Analyzer)
}
