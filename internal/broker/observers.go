package broker

// SubscriptionID identifies one callback registered on an entity topic.
// The zero value never identifies a live subscription.
type SubscriptionID uint64

type handler struct {
	id SubscriptionID
	fn func()
}

// observers maps a closed set of topics to callbacks in registration order.
// The slice stored per topic is never mutated in place, so notify can walk
// a snapshot while callbacks add or remove handlers (their own included).
type observers[T comparable] struct {
	next   SubscriptionID
	topics map[T][]handler
}

func (o *observers[T]) add(topic T, fn func()) SubscriptionID {
	if o.topics == nil {
		o.topics = make(map[T][]handler)
	}
	o.next++
	cur := o.topics[topic]
	hs := make([]handler, len(cur), len(cur)+1)
	copy(hs, cur)
	o.topics[topic] = append(hs, handler{id: o.next, fn: fn})
	return o.next
}

func (o *observers[T]) remove(topic T, id SubscriptionID) bool {
	cur := o.topics[topic]
	for i, h := range cur {
		if h.id != id {
			continue
		}
		hs := make([]handler, 0, len(cur)-1)
		hs = append(hs, cur[:i]...)
		hs = append(hs, cur[i+1:]...)
		if len(hs) == 0 {
			delete(o.topics, topic)
		} else {
			o.topics[topic] = hs
		}
		return true
	}
	return false
}

func (o *observers[T]) notify(topic T) {
	for _, h := range o.topics[topic] {
		h.fn()
	}
}

func (o *observers[T]) count(topic T) int { return len(o.topics[topic]) }
