package flow

// Probe counts invalidations. Attach one to any node to observe how far a
// Set cascade travels; the watch UI and the graph tests are built on it.
type Probe struct {
	count int
	sub   *Subscriber
}

// NewProbe creates an unattached probe.
func NewProbe() *Probe {
	p := &Probe{}
	p.sub = NewSubscriber(func() { p.count++ })
	return p
}

// Attach subscribes the probe to n. A probe can watch several nodes; the
// count then aggregates across all of them.
func (p *Probe) Attach(n Node) {
	n.Subscribe(p.sub)
}

// Count returns the invalidations seen since the last Reset.
func (p *Probe) Count() int { return p.count }

// Reset zeroes the count.
func (p *Probe) Reset() { p.count = 0 }
