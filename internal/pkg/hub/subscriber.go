package hub

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrSubscriberBusy is returned by Deliver when the subscriber cannot take a message now.
	ErrSubscriberBusy = errors.New("subscriber buffer is full")

	// ErrSubscriberClosed is returned once a subscriber has disconnected.
	ErrSubscriberClosed = errors.New("subscriber is closed")
)

// Message is one payload delivered on a topic. Payload holds JSON.
type Message struct {
	Topic   string
	Payload []byte
}

// Subscriber is a live consumer attached to one or more topics.
type Subscriber interface {
	// ID identifies the subscriber; two subscribers must never share an ID.
	ID() string

	// Deliver hands over a message. It must not block; return ErrSubscriberBusy
	// or ErrSubscriberClosed instead.
	Deliver(msg Message) error

	// Done is closed when the subscriber disconnects.
	Done() <-chan struct{}

	// Close disconnects the subscriber. It must be safe to call more than once.
	Close()
}

// ChannelSubscriber is a Subscriber backed by a bounded channel. A writer goroutine
// drains Messages() until Done() is closed.
type ChannelSubscriber struct {
	id        string
	messages  chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelSubscriber creates a subscriber with a random ID and the given buffer size.
// A buffer smaller than one is raised to one.
func NewChannelSubscriber(buffer int) *ChannelSubscriber {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelSubscriber{
		id:       uuid.NewString(),
		messages: make(chan Message, buffer),
		done:     make(chan struct{}),
	}
}

func (s *ChannelSubscriber) ID() string { return s.id }

// Deliver enqueues msg without blocking.
func (s *ChannelSubscriber) Deliver(msg Message) error {
	select {
	case <-s.done:
		return ErrSubscriberClosed
	default:
	}

	select {
	case s.messages <- msg:
		return nil
	default:
		return ErrSubscriberBusy
	}
}

// Messages returns the queue of delivered messages. It is never closed; select on Done.
func (s *ChannelSubscriber) Messages() <-chan Message {
	return s.messages
}

func (s *ChannelSubscriber) Done() <-chan struct{} {
	return s.done
}

func (s *ChannelSubscriber) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
