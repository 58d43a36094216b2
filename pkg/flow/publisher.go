package flow

import "weak"

// Subscriber is the invalidation capability of a dependent: the handle a
// publisher pokes when a value the dependent was derived from goes stale.
// Derived nodes own one internally; instrumentation such as [Probe] creates
// its own with [NewSubscriber].
//
// Publishers hold subscribers weakly. Keeping a Subscriber reachable is the
// owner's job; once the owner is collected, its subscriptions fall away on
// the next broadcast.
type Subscriber struct {
	notify func()
}

// NewSubscriber creates a subscriber that runs fn on every invalidation.
// fn must not assume any ordering relative to other subscribers of the same
// publisher.
func NewSubscriber(fn func()) *Subscriber {
	return &Subscriber{notify: fn}
}

// Invalidate delivers an invalidation to this subscriber directly, outside
// any broadcast.
func (s *Subscriber) Invalidate() {
	s.notify()
}

// publisher broadcasts invalidation to registered subscribers.
//
// Subscriptions are non-owning: a publisher never keeps a dependent alive.
// Entries whose subscriber has been collected are pruned lazily during
// publish, so a long-lived input does not accumulate garbage from
// short-lived dependents.
type publisher struct {
	subs []weak.Pointer[Subscriber]
}

// subscribe appends s to the subscriber list. No deduplication: subscribing
// the same subscriber twice means two notifications per publish.
func (p *publisher) subscribe(s *Subscriber) {
	p.subs = append(p.subs, weak.Make(s))
}

// publish notifies every live subscriber exactly once, then drops entries
// whose subscriber has been collected.
//
// Notification iterates a snapshot of the list, and pruning builds a fresh
// slice, so reentrant subscribes or publishes from inside a callback cannot
// corrupt an in-flight pass.
func (p *publisher) publish() {
	subs := p.subs
	dead := 0
	for _, wp := range subs {
		if s := wp.Value(); s != nil {
			s.notify()
		} else {
			dead++
		}
	}
	if dead > 0 {
		p.prune()
	}
}

// prune rewrites the subscriber list keeping only live entries.
func (p *publisher) prune() {
	live := make([]weak.Pointer[Subscriber], 0, len(p.subs))
	for _, wp := range p.subs {
		if wp.Value() != nil {
			live = append(live, wp)
		}
	}
	p.subs = live
}
