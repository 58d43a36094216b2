package flow

// Node is a handle to one value in a dataflow graph.
type Node interface {
	// Value returns the node's current value, computing and caching it if
	// the node is stale.
	Value() float32

	// Subscribe registers s to be notified when the node's value becomes
	// stale. Wiring derived nodes uses it internally; it is also the hook
	// for instrumentation such as [Probe].
	Subscribe(s *Subscriber)
}

// Const is a constant node. The literal is the value: constants are never
// cached and never go stale.
type Const float32

// Value returns the constant.
func (c Const) Value() float32 { return float32(c) }

// Subscribe is a no-op. A constant never changes, so it carries no publisher
// and never broadcasts.
func (Const) Subscribe(*Subscriber) {}
