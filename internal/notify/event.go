// Package notify describes observable game events and delivers them to an
// optional webhook on a best-effort basis.
package notify

import (
	"sync"
	"time"
)

// Kind identifies what happened.
type Kind int

const (
	KindSessionStart Kind = iota
	KindLevelUp
	KindHazardHit
	KindDeath
	KindCrash
)

// String returns a stable event kind name.
func (k Kind) String() string {
	switch k {
	case KindSessionStart:
		return "session_start"
	case KindLevelUp:
		return "level_up"
	case KindHazardHit:
		return "hazard_hit"
	case KindDeath:
		return "death"
	case KindCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Severity colors, as 0xRRGGBB.
const (
	ColorDefault = 0x8B0000
	ColorCrash   = 0xFF0000
)

// Field is a short labelled value shown alongside an event.
type Field struct {
	Name  string
	Value string
}

// Event is one notification. A zero Timestamp is filled in at dispatch time.
type Event struct {
	Kind        Kind
	Title       string
	Description string
	Color       int
	Fields      []Field
	Timestamp   time.Time
}

// Field returns the value of the named field, if present.
func (e Event) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Dispatcher delivers events. Dispatch must not block the game loop and
// never reports failure.
type Dispatcher interface {
	Dispatch(e Event)
}

// Discard drops every event.
type Discard struct{}

// Dispatch does nothing.
func (Discard) Dispatch(Event) {}

// Recorder keeps every dispatched event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Dispatch appends the event.
func (r *Recorder) Dispatch(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Fanout dispatches each event to every dispatcher in order.
type Fanout []Dispatcher

// Dispatch forwards the event.
func (f Fanout) Dispatch(e Event) {
	for _, d := range f {
		d.Dispatch(e)
	}
}
