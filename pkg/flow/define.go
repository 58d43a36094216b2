package flow

// CombineFunc is a pure N-ary combiner. It receives dependency values in
// declared order and returns the derived value. Combiners must not read
// anything that changes outside the graph.
type CombineFunc func(vals []float32) float32

// computed is a derived node: strong handles to its dependencies plus a
// one-slot memo of the combined value.
type computed struct {
	deps []Node
	memo memo
	sub  *Subscriber // keeps the invalidation capability alive with the node
}

// Define builds a derived node from an ordered dependency list and a pure
// combiner. The new node subscribes to each dependency once per edge, so a
// dependency listed twice notifies twice; the second notification lands on
// an already-empty slot and stops there. The dependency list is copied and
// the wiring is final: graphs are built bottom-up and never rewired.
//
// N = 0 is legal and yields a node that computes once and never goes stale.
func Define(deps []Node, combine CombineFunc) Node {
	c := &computed{deps: append([]Node(nil), deps...)}
	c.memo.step = func() float32 {
		vals := make([]float32, len(c.deps))
		for i, d := range c.deps {
			vals[i] = d.Value()
		}
		return combine(vals)
	}
	c.sub = NewSubscriber(c.memo.invalidate)
	for _, d := range c.deps {
		d.Subscribe(c.sub)
	}
	return c
}

// Define1 derives a node from one dependency.
func Define1(x Node, f func(x float32) float32) Node {
	return Define([]Node{x}, func(vals []float32) float32 {
		return f(vals[0])
	})
}

// Define2 derives a node from two dependencies.
func Define2(x, y Node, f func(x, y float32) float32) Node {
	return Define([]Node{x, y}, func(vals []float32) float32 {
		return f(vals[0], vals[1])
	})
}

// Define3 derives a node from three dependencies.
func Define3(x, y, z Node, f func(x, y, z float32) float32) Node {
	return Define([]Node{x, y, z}, func(vals []float32) float32 {
		return f(vals[0], vals[1], vals[2])
	})
}

// Value returns the derived value, running the combiner only when the memo
// slot is empty.
func (c *computed) Value() float32 { return c.memo.compute() }

// Subscribe registers s for invalidation of the derived value.
func (c *computed) Subscribe(s *Subscriber) { c.memo.subscribe(s) }
