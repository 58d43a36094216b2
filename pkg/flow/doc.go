// Package flow implements a lazy, memoizing dataflow graph over float32
// scalars.
//
// A graph is built bottom-up from three node variants:
//
//   - [Const]: a literal, usable anywhere a node is expected
//   - [Input]: a mutable leaf whose value is changed with [Input.Set]
//   - derived nodes, built by [Define] from dependency handles and a pure
//     combiner
//
// Reading and writing travel in opposite directions. [Node.Value] pulls: a
// derived node computes by pulling its dependencies and caches the result in
// a one-slot memo, so repeated reads cost nothing until something changes.
// [Input.Set] pushes: it invalidates every node derived from the input,
// transitively, before returning. Invalidation only empties memo slots; the
// next Value pays for exactly the nodes that went stale.
//
// A node broadcasts its own invalidation only when its slot goes from full
// to empty, so overlapping paths (diamonds) deliver a single notification
// downstream per change.
//
// Dependents hold their dependencies strongly. The reverse direction, used
// only for invalidation, is weak: releasing a derived node is enough to
// retire it, and its former dependencies drop the dead subscription during
// their next broadcast.
//
// # Usage
//
//	x := flow.NewInput()
//	y := flow.Add(flow.Mul(x, flow.Const(3)), flow.Const(1))
//	y.Value() // 1, since x starts at 0
//	x.Set(2)
//	y.Value() // 7
//
// Graphs are single-threaded: there is no synchronization anywhere, and
// callers serialize all access. Dependencies must form an acyclic graph;
// cycles are not detected and make Value recurse until the stack overflows.
package flow
