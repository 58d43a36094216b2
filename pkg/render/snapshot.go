package render

import (
	"strconv"

	"github.com/matzehuels/ripple/pkg/flow"
)

// LabelFunc names a node for display. Returning "" falls back to a
// kind-derived label.
type LabelFunc func(n flow.Node) string

// Node is one captured graph vertex.
type Node struct {
	ID     string
	Label  string
	Kind   flow.Kind
	Cached bool
	// Handle is the live graph node, kept so renderers can read current
	// values on demand.
	Handle flow.Node
}

// Edge runs from dependency to dependent, the direction data flows.
// Index is the argument position in the dependent's combiner.
type Edge struct {
	From  string
	To    string
	Index int
}

// Snapshot is a point-in-time copy of graph topology and memo state.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

// Capture walks the graphs reachable from roots and returns a deterministic
// snapshot: IDs n0, n1, ... in first-visit order, dependencies visited in
// their declared order. A node shared between roots is captured once.
//
// Capture reads topology and memo state only; it never evaluates a
// computed node.
func Capture(roots []flow.Node, label LabelFunc) *Snapshot {
	c := &capturer{ids: make(map[flow.Node]string), label: label}
	for _, r := range roots {
		c.visit(r)
	}
	return &c.snap
}

type capturer struct {
	snap  Snapshot
	ids   map[flow.Node]string
	label LabelFunc
}

func (c *capturer) visit(n flow.Node) string {
	if id, ok := c.ids[n]; ok {
		return id
	}
	id := "n" + strconv.Itoa(len(c.ids))
	c.ids[n] = id

	info := flow.Describe(n)
	c.snap.Nodes = append(c.snap.Nodes, Node{
		ID:     id,
		Label:  c.labelFor(n, info),
		Kind:   info.Kind,
		Cached: info.Cached,
		Handle: n,
	})
	for i, dep := range info.Deps {
		from := c.visit(dep)
		c.snap.Edges = append(c.snap.Edges, Edge{From: from, To: id, Index: i})
	}
	return id
}

func (c *capturer) labelFor(n flow.Node, info flow.Info) string {
	if c.label != nil {
		if l := c.label(n); l != "" {
			return l
		}
	}
	if info.Kind == flow.KindConst {
		return strconv.FormatFloat(float64(n.Value()), 'g', -1, 32)
	}
	return info.Kind.String()
}
