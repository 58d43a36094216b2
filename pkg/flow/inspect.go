package flow

// Kind classifies nodes for introspection.
type Kind int

const (
	KindConst Kind = iota
	KindInput
	KindComputed
	KindOpaque // a Node implementation from outside this package
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindInput:
		return "input"
	case KindComputed:
		return "computed"
	default:
		return "opaque"
	}
}

// Info is a read-only description of a node.
type Info struct {
	Kind Kind

	// Deps holds dependency handles in declared order; nil for leaves.
	Deps []Node

	// Cached reports whether a derived node currently holds a memoized
	// value. Always false for other kinds.
	Cached bool
}

// Describe reports a node's kind, dependencies, and cache state without
// disturbing any of them. Rendering and the watch UI walk graphs through it.
func Describe(n Node) Info {
	switch t := n.(type) {
	case Const:
		return Info{Kind: KindConst}
	case *Input:
		return Info{Kind: KindInput}
	case *computed:
		return Info{
			Kind:   KindComputed,
			Deps:   append([]Node(nil), t.deps...),
			Cached: t.memo.valid,
		}
	default:
		return Info{Kind: KindOpaque}
	}
}
