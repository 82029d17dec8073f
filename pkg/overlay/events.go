package overlay

import "sync"

// Topic identifies a class of host events panels react to.
type Topic string

// Canonical topics. Hosts publish these; the manager subscribes on behalf
// of each open panel and unsubscribes the moment it closes.
const (
	// TopicScroll fires when a scrollable container moves.
	TopicScroll Topic = "scroll"
	// TopicResize fires when the viewport changes size.
	TopicResize Topic = "resize"
	// TopicPaginate fires when a pagination control changes page.
	TopicPaginate Topic = "paginate"
	// TopicNavigate fires on a route change. All open panels force-close.
	TopicNavigate Topic = "navigate"
)

// ScrollEvent is the payload for TopicScroll.
type ScrollEvent struct {
	ContainerID string
	DX, DY      int
}

// ResizeEvent is the payload for TopicResize.
type ResizeEvent struct {
	Width, Height int
}

// NavigateEvent is the payload for TopicNavigate.
type NavigateEvent struct {
	Route string
}

// Event is one published occurrence of a topic.
type Event struct {
	Topic Topic
	Data  any
}

// EventHandler receives published events for a subscribed topic.
type EventHandler func(Event)

// Subscription is the handle returned by Subscribe. Cancel is idempotent;
// after it returns the handler will not be invoked again.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    int
}

// Cancel removes the subscription from its bus.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	if set, ok := s.bus.subs[s.topic]; ok {
		delete(set, s.id)
		if len(set) == 0 {
			delete(s.bus.subs, s.topic)
		}
	}
	s.bus.mu.Unlock()
	s.bus = nil
}

// Bus is a minimal in-process publish/subscribe hub. Every subscription is
// held through an explicit handle so callers can prove teardown: after a
// full open/close cycle the listener count returns to its baseline.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[Topic]map[int]EventHandler
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]EventHandler)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, h EventHandler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	set, ok := b.subs[topic]
	if !ok {
		set = make(map[int]EventHandler)
		b.subs[topic] = set
	}
	set[b.next] = h
	return &Subscription{bus: b, topic: topic, id: b.next}
}

// Publish delivers an event to every handler subscribed to its topic.
// Handlers run outside the bus lock, so they may subscribe or cancel.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]EventHandler, 0, len(b.subs[e.Topic]))
	for _, h := range b.subs[e.Topic] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}

// ListenerCount reports the number of live subscriptions for one topic.
func (b *Bus) ListenerCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// TotalListeners reports the number of live subscriptions across all topics.
func (b *Bus) TotalListeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, set := range b.subs {
		total += len(set)
	}
	return total
}
