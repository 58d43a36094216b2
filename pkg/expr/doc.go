// Package expr implements the ripple script language: a small, line-oriented
// notation for declaring inputs and derived formulas, compiled into a live
// [flow] graph.
//
// # Script Form
//
// A script is a sequence of statements, one per line. Comments run from "#"
// to the end of the line. There are two statement forms:
//
//	input rate = 1.5     # mutable input with an initial value
//	input hours          # inputs without an initializer start at 0
//	pay = rate * hours   # derived value
//
// Expressions support the operators + - * / ^ with the usual precedence,
// parentheses, and calls to the built-in functions sin, cos, tan, sqrt, abs,
// exp, ln, pow, min, max, and neg. Exponentiation is right-associative and
// binds tighter than unary minus: -x^2 is -(x^2) and 2^3^2 is 512.
//
// # Names Are Handles
//
// A reference resolves to the node bound to that name, never to a copy, so
// formulas that mention the same name share one subgraph:
//
//	input x = 1
//	y = sin(x)
//	z = y * y    # both operands are the same node; sin(x) computes once
//
// Declaration order is binding order. A name must be declared above every
// line that uses it, which also means a script cannot express a cyclic graph.
//
// # Compiling
//
// [Compile] takes source to a [Program] in one step; [Parse] and [Build] are
// the two halves. All errors are fail-fast and positioned:
//
//	prog, err := expr.Compile(src)
//	if err != nil {
//		return err  // e.g. 3:5: unknown function "sine"
//	}
//	prog.SetInput("rate", 2)
//	for _, nv := range prog.Eval() {
//		fmt.Println(nv.Name, nv.Value)
//	}
//
// [flow]: github.com/matzehuels/ripple/pkg/flow
package expr
