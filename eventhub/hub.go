// Package eventhub fans a single inbound event channel out to per-class
// broadcast streams. Host-side delivery for a class is enabled only while the
// class has at least one listener: the hub signals its Toggler exactly once
// on the 0→1 listener edge and once on the 1→0 edge.
package eventhub

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Class identifies one category of inbound event. The set of classes a hub
// serves is fixed at construction.
type Class string

// Event is what listeners receive: the class tag and the payload exactly as
// it arrived.
type Event struct {
	Class   Class
	Payload json.RawMessage
}

// Toggler receives the listener-presence edge signals. EnableDelivery is
// called synchronously from the Subscribe that moved the class from zero to
// one listener, before Subscribe returns; DisableDelivery from the Close that
// removed the last one. Errors are logged by the hub, never surfaced.
type Toggler interface {
	EnableDelivery(class Class) error
	DisableDelivery(class Class) error
}

// Stats receives delivery accounting. All methods must be non-blocking.
type Stats interface {
	EventDispatched(class string)
	EventDropped(class, reason string)
	ListenerCount(class string, n int)
}

type nopStats struct{}

func (nopStats) EventDispatched(string)      {}
func (nopStats) EventDropped(string, string) {}
func (nopStats) ListenerCount(string, int)   {}

// DefaultBuffer is the per-subscription channel capacity.
const DefaultBuffer = 16

// Subscription is one listener's attachment to a class stream. Receive from
// C; Close detaches (idempotent).
type Subscription struct {
	id     string
	class  Class
	ch     chan Event
	stream *stream
}

// C returns the receive channel. It is closed when the subscription is
// closed; a full buffer drops new events rather than blocking dispatch.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Class returns the event class this subscription is attached to.
func (s *Subscription) Class() Class {
	return s.class
}

// Close detaches the listener. Closing an already-closed subscription is a
// no-op. After Close returns, no further events are delivered on C.
func (s *Subscription) Close() {
	s.stream.remove(s)
}

// stream is the broadcast state for one class. Sends happen under the read
// lock, membership changes under the write lock, so removal strictly
// serializes against in-flight fan-out.
type stream struct {
	class Class
	hub   *Hub

	mu   sync.RWMutex
	subs map[string]*Subscription
}

func (st *stream) add(sub *Subscription) {
	st.mu.Lock()
	st.subs[sub.id] = sub
	first := len(st.subs) == 1
	n := len(st.subs)
	st.mu.Unlock()

	st.hub.stats.ListenerCount(string(st.class), n)
	if first {
		if err := st.hub.toggler.EnableDelivery(st.class); err != nil {
			st.hub.logger.Warn().Err(err).Str("class", string(st.class)).Msg("enable delivery signal failed")
		} else {
			st.hub.logger.Debug().Str("class", string(st.class)).Msg("delivery enabled")
		}
	}
}

func (st *stream) remove(sub *Subscription) {
	st.mu.Lock()
	if _, ok := st.subs[sub.id]; !ok {
		st.mu.Unlock()
		return
	}
	delete(st.subs, sub.id)
	last := len(st.subs) == 0
	n := len(st.subs)
	// Safe to close here: dispatch sends hold the read lock, so none is in
	// flight while we hold the write lock, and the sub is no longer visible.
	close(sub.ch)
	st.mu.Unlock()

	st.hub.stats.ListenerCount(string(st.class), n)
	if last {
		if err := st.hub.toggler.DisableDelivery(st.class); err != nil {
			st.hub.logger.Warn().Err(err).Str("class", string(st.class)).Msg("disable delivery signal failed")
		} else {
			st.hub.logger.Debug().Str("class", string(st.class)).Msg("delivery disabled")
		}
	}
}

func (st *stream) publish(ev Event) {
	st.mu.RLock()
	for _, sub := range st.subs {
		select {
		case sub.ch <- ev:
		default:
			st.hub.stats.EventDropped(string(st.class), "slow_listener")
			st.hub.logger.Warn().Str("class", string(st.class)).Str("subscription", sub.id).Msg("listener buffer full, event dropped")
		}
	}
	st.mu.RUnlock()
}

func (st *stream) listeners() int {
	st.mu.RLock()
	n := len(st.subs)
	st.mu.RUnlock()
	return n
}

// Hub owns one stream per class. The class set and therefore the streams map
// never change after New, so Dispatch reads it without locking.
type Hub struct {
	streams map[Class]*stream
	toggler Toggler
	stats   Stats
	logger  zerolog.Logger
	buffer  int
}

// Option configures a Hub.
type Option func(*Hub)

// WithStats attaches delivery accounting.
func WithStats(s Stats) Option {
	return func(h *Hub) {
		if s != nil {
			h.stats = s
		}
	}
}

// WithBuffer overrides the per-subscription channel capacity.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// New creates a hub serving exactly the given classes.
func New(classes []Class, toggler Toggler, logger zerolog.Logger, opts ...Option) *Hub {
	h := &Hub{
		streams: make(map[Class]*stream, len(classes)),
		toggler: toggler,
		stats:   nopStats{},
		logger:  logger.With().Str("component", "eventhub").Logger(),
		buffer:  DefaultBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	for _, c := range classes {
		h.streams[c] = &stream{class: c, hub: h, subs: make(map[string]*Subscription)}
	}
	return h
}

// Subscribe attaches a listener to a class stream. If this is the first
// listener for the class, the enable signal has been issued by the time
// Subscribe returns.
func (h *Hub) Subscribe(class Class) (*Subscription, error) {
	st, ok := h.streams[class]
	if !ok {
		return nil, fmt.Errorf("unknown event class %q", class)
	}
	sub := &Subscription{
		id:     uuid.NewString(),
		class:  class,
		ch:     make(chan Event, h.buffer),
		stream: st,
	}
	st.add(sub)
	return sub, nil
}

// Dispatch routes one inbound event to the matching stream. Unknown tags are
// dropped with a diagnostic; Dispatch never panics and never blocks on slow
// listeners, so a bad message cannot stall the inbound channel.
func (h *Hub) Dispatch(class Class, payload json.RawMessage) {
	st, ok := h.streams[class]
	if !ok {
		h.stats.EventDropped(string(class), "unknown_class")
		h.logger.Warn().Str("class", string(class)).Msg("event for unknown class dropped")
		return
	}
	h.stats.EventDispatched(string(class))
	st.publish(Event{Class: class, Payload: payload})
}

// Listeners returns the current listener count for a class. Zero for unknown
// classes.
func (h *Hub) Listeners(class Class) int {
	st, ok := h.streams[class]
	if !ok {
		return 0
	}
	return st.listeners()
}

// Close detaches every listener, issuing the disable signal for each class
// that still had any.
func (h *Hub) Close() {
	for _, st := range h.streams {
		st.mu.Lock()
		subs := make([]*Subscription, 0, len(st.subs))
		for _, sub := range st.subs {
			subs = append(subs, sub)
		}
		st.mu.Unlock()
		for _, sub := range subs {
			st.remove(sub)
		}
	}
	h.logger.Debug().Msg("hub closed")
}
