// Package pkg provides the core libraries for Ripple dataflow evaluation.
//
// # Overview
//
// Ripple compiles small scripts into lazy dataflow graphs: named values
// connected by arithmetic, recomputed only when something they depend on
// changes. The pkg directory is organized into four main areas:
//
//  1. [flow] - The graph itself (nodes, memoization, invalidation)
//  2. [expr] - The script language (lexer, parser, graph builder)
//  3. [render] - Visualization (DOT, SVG, terminal trees)
//  4. [pipeline] - Orchestration (compile → eval → render, with caching)
//
// # Architecture
//
// The typical data flow through Ripple:
//
//	Script source (.rpl)
//	         ↓
//	    [expr] package (parse + build the graph)
//	         ↓
//	    [flow] package (lazy evaluation + invalidation)
//	         ↓
//	    [render] package (snapshot + formatting)
//	         ↓
//	    DOT/SVG/tree output
//
// # Quick Start
//
// Compile a script, evaluate it, and react to an input change:
//
//	import "github.com/matzehuels/ripple/pkg/expr"
//
//	prog, _ := expr.Compile("input x = 2\ny = x * 3\n")
//	for _, nv := range prog.Eval() {
//	    fmt.Printf("%s = %g\n", nv.Name, nv.Value)
//	}
//
//	prog.SetInput("x", 5) // invalidates y
//	v, _ := prog.Value("y")
//
// Graphs can also be built directly, without a script:
//
//	import "github.com/matzehuels/ripple/pkg/flow"
//
//	x := flow.NewInput()
//	x.Set(2)
//	y := flow.Mul(x, flow.Const(3))
//	_ = y.Value()
//
// # Main Packages
//
// [flow] - Pull-based dataflow nodes with one-slot memoization and push-based
// invalidation over weak subscriber references. Includes the operation
// catalog (Add, Mul, Sin, Pow, ...), Probe for counting invalidations, and
// Describe for read-only introspection.
//
// [expr] - The script language: one statement per line, inputs and derived
// names, infix arithmetic with function calls. Compiles to a live [flow]
// graph whose inputs stay settable.
//
// [render] - Snapshot capture plus three formatters: Graphviz DOT source,
// SVG through the embedded Graphviz engine, and box-drawing trees for the
// terminal.
//
// [pipeline] - The staged runner the CLI drives: compile, evaluate, render,
// with content-addressed artifact caching and observability hooks.
//
// [cache] - Artifact cache interfaces and backends (file-based, null) with
// SHA-256 content hashing and composable key scoping.
//
// [errors] - Structured errors with stable codes and optional script
// positions, shared by every stage.
//
// [observability] - Process-global hook registry for pipeline and cache
// events.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/flow/...      # Specific package
//	go test -run Example        # Examples only
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/flow
// [expr]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/expr
// [render]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ripple/pkg/buildinfo
package pkg
