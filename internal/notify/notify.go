// Package notify provides change notification for document state.
//
// The notify package implements an observer pattern that allows components
// to subscribe to document changes and receive callbacks when the content
// or selection of a field is modified.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeContent indicates the document content was replaced or edited.
	ChangeContent ChangeType = iota

	// ChangeSelection indicates the selection moved without a content edit.
	ChangeSelection

	// ChangeReset indicates the document was reset to an empty state.
	ChangeReset
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeContent:
		return "content"
	case ChangeSelection:
		return "selection"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change represents a document change event.
type Change struct {
	// Type is the type of change.
	Type ChangeType

	// Revision identifies the document revision after the change.
	Revision uuid.UUID

	// Old is the serialized state before the change (content or selection,
	// depending on Type). May be empty.
	Old string

	// New is the serialized state after the change.
	New string

	// Source identifies where the change came from.
	Source string
}

// Observer is called when document changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages document change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Global observers that receive all changes
	globalObservers map[uint64]Observer

	// Type-specific observers
	typeObservers map[ChangeType]map[uint64]Observer

	nextID uint64

	// Whether to deliver synchronously or through a buffered goroutine
	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		typeObservers:   make(map[ChangeType]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.deliverLoop()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.globalObservers[id] = obs

	return &Subscription{id: id, notifier: n}
}

// SubscribeType registers an observer for a specific change type.
func (n *Notifier) SubscribeType(t ChangeType, obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	if n.typeObservers[t] == nil {
		n.typeObservers[t] = make(map[uint64]Observer)
	}
	n.typeObservers[t][id] = obs

	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)
	for _, m := range n.typeObservers {
		delete(m, id)
	}
}

// Notify delivers a change to all matching observers.
// With async delivery enabled, the change is queued; if the queue is full
// the change is dropped rather than blocking the editing path.
func (n *Notifier) Notify(change Change) {
	if n.async {
		n.mu.RLock()
		closed := n.closed
		n.mu.RUnlock()
		if closed {
			return
		}
		select {
		case n.buffer <- change:
		default:
		}
		return
	}

	n.deliver(change)
}

func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.globalObservers))
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for _, obs := range n.typeObservers[change.Type] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) deliverLoop() {
	defer n.wg.Done()
	for {
		select {
		case <-n.done:
			// Drain anything already queued
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		case change := <-n.buffer:
			n.deliver(change)
		}
	}
}

// ObserverCount returns the total number of registered observers.
func (n *Notifier) ObserverCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	count := len(n.globalObservers)
	for _, m := range n.typeObservers {
		count += len(m)
	}
	return count
}

// Close shuts down async delivery. Idempotent.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	if n.async {
		close(n.done)
		n.wg.Wait()
	}
}
