package flow

// memo is a one-slot cache around a pure compute step, together with the
// publisher that announces when the slot empties.
//
// The full/empty state lives in a separate flag rather than a sentinel value
// so that NaN results cache like any other float.
type memo struct {
	step  func() float32
	value float32
	valid bool
	pub   publisher
}

// compute returns the cached value, running step only when the slot is
// empty. Between two invalidations step runs at most once.
func (m *memo) compute() float32 {
	if !m.valid {
		m.value = m.step()
		m.valid = true
	}
	return m.value
}

// invalidate empties the slot and republishes downstream. Only the first
// invalidation after a compute broadcasts; invalidating an already-empty
// slot does nothing, which keeps overlapping paths from delivering the same
// notification twice.
func (m *memo) invalidate() {
	if !m.valid {
		return
	}
	m.valid = false
	m.pub.publish()
}

// subscribe registers s on the memo's publisher.
func (m *memo) subscribe(s *Subscriber) {
	m.pub.subscribe(s)
}
