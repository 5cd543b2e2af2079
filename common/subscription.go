package common

import (
	"sync"
	"time"

	"github.com/satori/go.uuid"
)

const subscriptionChanSize = 16

// SubscriptionTarget defines the interface between a subscription and its
// target object
type SubscriptionTarget interface {
	NewSubscription() (*Subscription, error)
	CloseSubscription(*Subscription) error
}

// Subscription exposes an event channel for consumers, and attaches to a
// SubscriptionTarget that feeds it with events
type Subscription struct {
	events   chan interface{}
	quitChan chan struct{}
	id       uuid.UUID
	target   SubscriptionTarget
	timeout  time.Duration
	once     sync.Once
}

// ID returns the unique ID for this subscription
func (s *Subscription) ID() string {
	return s.id.String()
}

// Events returns a chan reader for reading events published to this
// subscription
func (s *Subscription) Events() <-chan interface{} {
	return s.events
}

// Write pushes an event onto the events channel, giving up with ErrTimeout if
// the consumer does not make room in time
func (s *Subscription) Write(event interface{}) error {
	select {
	case <-s.quitChan:
		return ErrClosed
	default:
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case <-s.quitChan:
		return ErrClosed
	case s.events <- event:
		return nil
	case <-timer.C:
		return ErrTimeout
	}
}

// TryWrite pushes an event onto the events channel only if there is room,
// returning ErrTimeout without waiting otherwise
func (s *Subscription) TryWrite(event interface{}) error {
	select {
	case <-s.quitChan:
		return ErrClosed
	default:
	}

	select {
	case s.events <- event:
		return nil
	default:
		return ErrTimeout
	}
}

// Close detaches the subscription from its target.  Closing twice returns
// ErrClosed.
func (s *Subscription) Close() error {
	closed := false
	s.once.Do(func() {
		close(s.quitChan)
		closed = true
	})
	if !closed {
		Log.Warnf(`subscription %s already closed`, s.ID())
		return ErrClosed
	}
	return s.target.CloseSubscription(s)
}

// NewSubscription returns a *Subscription attached to the specified target
func NewSubscription(target SubscriptionTarget) *Subscription {
	return &Subscription{
		events:   make(chan interface{}, subscriptionChanSize),
		quitChan: make(chan struct{}),
		id:       uuid.NewV4(),
		target:   target,
		timeout:  DefaultTimeout,
	}
}

// Done returns a channel that is closed once the subscription is closed, so
// consumers can stop waiting on Events
func (s *Subscription) Done() <-chan struct{} {
	return s.quitChan
}
