package flow

// Input is a mutable leaf node. It carries a plain value (an input is always
// its own cache) and the publisher for everything derived from it.
type Input struct {
	value float32
	pub   publisher
}

// NewInput creates an input holding 0.
func NewInput() *Input {
	return &Input{}
}

// Value returns the current value.
func (in *Input) Value() float32 { return in.value }

// Set overwrites the value and broadcasts invalidation to all dependents.
// The broadcast is unconditional: setting a value equal to the current one
// still notifies. The whole cascade runs synchronously, so every dependent
// is stale by the time Set returns.
func (in *Input) Set(v float32) {
	in.value = v
	in.pub.publish()
}

// Subscribe registers s to be notified on every Set.
func (in *Input) Subscribe(s *Subscriber) {
	in.pub.subscribe(s)
}
