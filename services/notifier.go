package services

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event names broadcast after a successful mutation of the matching
// collection. Payload-less by design: subscribers re-query the service.
const (
	EventDeadlinesUpdated = "homework-deadlines-updated"
	EventCheckedUpdated   = "checked-submissions-updated"
)

type listener struct {
	id string
	fn func()
}

// Notifier is an in-process broadcast registry. Delivery is synchronous, in
// registration order, on the goroutine of the mutating call. There is no
// delivery guarantee across restarts.
type Notifier struct {
	mu        sync.Mutex
	listeners map[string][]listener
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[string][]listener)}
}

// Subscribe registers fn for the named event and returns a handle usable
// with Unsubscribe.
func (n *Notifier) Subscribe(event string, fn func()) string {
	id := uuid.NewString()
	n.mu.Lock()
	n.listeners[event] = append(n.listeners[event], listener{id: id, fn: fn})
	n.mu.Unlock()
	return id
}

// Unsubscribe removes the listener registered under the given handle.
// Unknown handles are ignored.
func (n *Notifier) Unsubscribe(event, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	entries := n.listeners[event]
	for i, l := range entries {
		if l.id == id {
			n.listeners[event] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Emit invokes every listener registered for the event. A panicking
// listener is logged and must not prevent the remaining listeners from
// running, nor fail the mutating call that emitted.
func (n *Notifier) Emit(event string) {
	n.mu.Lock()
	entries := make([]listener, len(n.listeners[event]))
	copy(entries, n.listeners[event])
	n.mu.Unlock()

	for _, l := range entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Listener for %s panicked: %v", event, r)
				}
			}()
			l.fn()
		}()
	}
}
