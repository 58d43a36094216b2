package render

import "strings"

// Tree renders the snapshot as box-drawing dependency trees, one per sink
// (a node nothing depends on), sinks in capture order. Children are the
// node's dependencies in argument order. A node that already appeared is
// marked (shared) and not expanded again.
func Tree(snap *Snapshot) string {
	deps := make(map[string][]string)
	isDep := make(map[string]bool)
	for _, e := range snap.Edges {
		deps[e.To] = append(deps[e.To], e.From)
		isDep[e.From] = true
	}
	labels := make(map[string]string, len(snap.Nodes))
	for _, n := range snap.Nodes {
		labels[n.ID] = n.Label
	}

	t := &treePrinter{deps: deps, labels: labels, seen: make(map[string]bool)}
	first := true
	for _, n := range snap.Nodes {
		if isDep[n.ID] {
			continue
		}
		if !first {
			t.b.WriteString("\n")
		}
		first = false
		t.write(n.ID, "", "")
	}
	return t.b.String()
}

type treePrinter struct {
	b      strings.Builder
	deps   map[string][]string
	labels map[string]string
	seen   map[string]bool
}

func (t *treePrinter) write(id, prefix, childPrefix string) {
	t.b.WriteString(prefix)
	t.b.WriteString(t.labels[id])
	if t.seen[id] {
		t.b.WriteString(" (shared)\n")
		return
	}
	t.seen[id] = true
	t.b.WriteString("\n")

	kids := t.deps[id]
	for i, kid := range kids {
		if i == len(kids)-1 {
			t.write(kid, childPrefix+"└── ", childPrefix+"    ")
		} else {
			t.write(kid, childPrefix+"├── ", childPrefix+"│   ")
		}
	}
}
