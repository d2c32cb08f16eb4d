// Package selection owns the host's active selection.
//
// Every assignment publishes event.TopicSelectionChanged synchronously, even
// when the object is already selected. The history tracker relies on that:
// each SetActive it issues while navigating must come back as exactly one
// notification.
package selection

import (
	"github.com/dshills/selnav/internal/event"
	"github.com/dshills/selnav/internal/history"
)

// Publisher is the part of the event bus the selection needs.
type Publisher interface {
	Publish(topic event.Topic, payload any) (int, error)
}

// Selection is the single active object.
type Selection struct {
	pub    Publisher
	active history.Ref
}

var _ history.Selector = (*Selection)(nil)

// New returns an empty selection publishing on pub.
func New(pub Publisher) *Selection {
	return &Selection{pub: pub}
}

// Active returns the selected reference, or the zero Ref.
func (s *Selection) Active() history.Ref {
	return s.active
}

// SetActive selects ref and announces the change.
func (s *Selection) SetActive(ref history.Ref) {
	s.active = ref
	if s.pub != nil {
		_, _ = s.pub.Publish(event.TopicSelectionChanged, ref)
	}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.SetActive("")
}
