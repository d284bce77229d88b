package service

import "sync"

// SessionEventType marks a session transition.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

// SessionEvent is published on every sign-in and sign-out.
type SessionEvent struct {
	Type   SessionEventType
	UserID string
}

// SessionEvents is an in-process listener registry for session transitions.
// Subscribers hook per-user cleanup (cache clearing, state reset) to
// sign-out without the auth service knowing who listens. Safe for
// concurrent use; handlers run synchronously on the publishing goroutine.
type SessionEvents struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(SessionEvent)
}

func NewSessionEvents() *SessionEvents {
	return &SessionEvents{handlers: make(map[int]func(SessionEvent))}
}

// Subscribe registers a handler and returns an unsubscribe function.
// Unsubscribe is idempotent.
func (e *SessionEvents) Subscribe(handler func(SessionEvent)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.handlers[id] = handler

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers, id)
	}
}

// Publish delivers the event to every current subscriber.
func (e *SessionEvents) Publish(event SessionEvent) {
	e.mu.Lock()
	handlers := make([]func(SessionEvent), 0, len(e.handlers))
	for _, h := range e.handlers {
		handlers = append(handlers, h)
	}
	e.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}
