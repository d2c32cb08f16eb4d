package event

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
)

// Bus errors.
var (
	ErrInvalidTopic = errors.New("invalid topic")
	ErrNilHandler   = errors.New("nil handler")
	ErrNotFound     = errors.New("subscription not found")
)

// Event is a published message.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives events.
type Handler func(ev Event)

// PanicHandler is told about handlers that panicked.
type PanicHandler func(ev Event, recovered any, stack []byte)

// Subscription identifies a registered handler.
type Subscription struct {
	id      uint64
	pattern Topic
	handler Handler
}

// Pattern returns the topic pattern the subscription matches.
func (s *Subscription) Pattern() Topic {
	return s.pattern
}

// Bus delivers events synchronously to matching subscribers.
//
// The subscriber list is guarded so that Subscribe may be called from any
// goroutine; delivery itself runs in the publisher's goroutine without
// holding the lock, so handlers may publish and subscribe freely.
type Bus struct {
	mu      sync.RWMutex
	subs    []*Subscription
	nextID  uint64
	onPanic PanicHandler
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the hook told about panicking handlers.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = h
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for topics matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (*Subscription, error) {
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{id: b.nextID, pattern: pattern, handler: handler}
	b.subs = append(b.subs, sub)
	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.subs, func(s *Subscription) bool { return s.id == sub.id })
	if i < 0 {
		return ErrNotFound
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	return nil
}

// Len returns the number of subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers an event to every matching subscriber and returns the
// number of handlers that ran to completion.
func (b *Bus) Publish(topic Topic, payload any) (int, error) {
	if !topic.Valid() || topic.IsWildcard() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	delivered := 0
	for _, sub := range subs {
		if !sub.pattern.Matches(topic) {
			continue
		}
		if b.deliver(sub, ev) {
			delivered++
		}
	}
	return delivered, nil
}

// deliver runs one handler, recovering a panic so the remaining
// subscribers still see the event.
func (b *Bus) deliver(sub *Subscription, ev Event) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if b.onPanic != nil {
				b.onPanic(ev, r, debug.Stack())
			}
		}
	}()
	sub.handler(ev)
	return true
}
