// Package render turns flow graphs into visual output.
//
// # Overview
//
// Rendering is a two-step process. [Capture] freezes a live graph into a
// [Snapshot]: plain nodes and edges with deterministic IDs, safe to format
// without touching graph state. The snapshot then feeds one of the
// formatters:
//
//   - [ToDOT]: Graphviz DOT source
//   - [RenderSVG]: SVG via the embedded Graphviz engine
//   - [Tree]: box-drawing dependency trees for the terminal
//
// # Usage
//
// Capture takes the nodes to walk and an optional labeling function, which
// usually comes from the compiled script:
//
//	snap := render.Capture(prog.Roots(), prog.Label)
//	dot := render.ToDOT(snap, render.Options{Rankdir: "LR"})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Edges point from dependency to dependent, the direction values flow, so
// diagrams read top-down from inputs to results under the default rankdir.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly. No external binaries are required.
package render
