package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"shoporders/internal/pkg/errs"
)

// ErrHubClosed is returned by Subscribe after Close.
var ErrHubClosed = errors.New("hub is closed")

// Hub is the topic registry and fan-out. Construct it with New and share the pointer;
// the zero value is not usable.
type Hub struct {
	// topics maps a topic name to *topic. Publish reads it without taking mu.
	topics sync.Map

	// mu guards members and closed and is held only for map access, so
	// subscription changes on unrelated topics do not wait on each other.
	// Lock order is mu, then member.mu, then topic.mu.
	mu      sync.Mutex
	members map[string]*member
	closed  bool

	stop    chan struct{}
	watches sync.WaitGroup

	metrics *Metrics
	logger  *slog.Logger
}

type topic struct {
	mu   sync.RWMutex
	subs map[string]*member
	// dead is set when the topic was removed from the registry; late subscribers retry.
	dead bool
}

type member struct {
	sub Subscriber

	mu     sync.Mutex
	topics map[string]struct{}
	// removed is set once the member left the registry; it never rejoins.
	removed bool
	// drops counts consecutive failed deliveries.
	drops atomic.Int64
}

// Stats is a point-in-time view of the hub.
type Stats struct {
	Topics        int
	Subscribers   int
	Subscriptions int
}

// New creates a hub. metrics may be nil.
func New(logger *slog.Logger, metrics *Metrics) *Hub {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Hub{
		members: make(map[string]*member),
		stop:    make(chan struct{}),
		metrics: metrics,
		logger:  logger.With("component", "notification_hub"),
	}
}

// Subscribe attaches sub to topicName. Subscribing the same pair twice is a no-op.
// The subscriber is detached from every topic when its Done channel closes.
func (h *Hub) Subscribe(topicName string, sub Subscriber) error {
	if topicName == "" {
		return errs.NewValueIsRequiredError("topic")
	}
	if sub == nil {
		return errs.NewValueIsRequiredError("subscriber")
	}

	m, err := h.register(sub)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.removed {
		return h.removedErr()
	}
	if _, already := m.topics[topicName]; already {
		return nil
	}

	m.topics[topicName] = struct{}{}
	h.attach(topicName, m)
	h.metrics.subscriptions.Inc()
	return nil
}

// register returns the registry entry for sub, creating it on first use.
func (h *Hub) register(sub Subscriber) (*member, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	select {
	case <-sub.Done():
		return nil, ErrSubscriberClosed
	default:
	}

	m, ok := h.members[sub.ID()]
	if !ok {
		m = &member{sub: sub, topics: make(map[string]struct{})}
		h.members[sub.ID()] = m
		h.watches.Add(1)
		go h.watch(m)
	}
	return m, nil
}

func (h *Hub) removedErr() error {
	select {
	case <-h.stop:
		return ErrHubClosed
	default:
		return ErrSubscriberClosed
	}
}

// Unsubscribe detaches sub from topicName. Unknown pairs are ignored.
func (h *Hub) Unsubscribe(topicName string, sub Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	m, ok := h.members[sub.ID()]
	h.mu.Unlock()
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, subscribed := m.topics[topicName]; !subscribed {
		return
	}

	delete(m.topics, topicName)
	h.detach(topicName, m.sub.ID())
	h.metrics.subscriptions.Dec()
}

// Publish encodes payload once and offers it to every subscriber attached to
// topicName at this moment. It never blocks on a subscriber and never fails the
// caller: encoding errors and per-subscriber failures are logged and counted.
// It returns the number of subscribers that accepted the message.
//
// payload may be a []byte or json.RawMessage holding JSON, or any value that
// encoding/json can marshal.
func (h *Hub) Publish(ctx context.Context, topicName string, payload any) int {
	h.metrics.published.Inc()

	data, err := encode(payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode notification payload", "topic", topicName, "error", err)
		return 0
	}

	value, ok := h.topics.Load(topicName)
	if !ok {
		return 0
	}
	t := value.(*topic)

	t.mu.RLock()
	targets := make([]*member, 0, len(t.subs))
	for _, m := range t.subs {
		targets = append(targets, m)
	}
	t.mu.RUnlock()

	msg := Message{Topic: topicName, Payload: data}
	delivered := 0
	for _, m := range targets {
		if deliverErr := h.deliver(m, msg); deliverErr != nil {
			h.metrics.deliveries.WithLabelValues(resultDropped).Inc()
			h.logger.DebugContext(ctx, "Notification dropped",
				"topic", topicName, "subscriber", m.sub.ID(), "error", deliverErr)
			continue
		}
		h.metrics.deliveries.WithLabelValues(resultDelivered).Inc()
		delivered++
	}

	return delivered
}

// EvictSlow closes every subscriber whose last threshold deliveries all failed and
// returns how many were evicted. A threshold below one disables eviction.
func (h *Hub) EvictSlow(threshold int64) int {
	if threshold < 1 {
		return 0
	}

	h.mu.Lock()
	var slow []*member
	for _, m := range h.members {
		if m.drops.Load() >= threshold {
			slow = append(slow, m)
		}
	}
	for _, m := range slow {
		h.removeLocked(m)
	}
	h.mu.Unlock()

	for _, m := range slow {
		h.logger.Warn("Evicting slow subscriber", "subscriber", m.sub.ID(), "drops", m.drops.Load())
		m.sub.Close()
		h.metrics.evictions.Inc()
	}
	return len(slow)
}

// Stats returns the current number of topics, subscribers and subscriptions.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{Subscribers: len(h.members)}
	h.topics.Range(func(_, _ any) bool {
		stats.Topics++
		return true
	})
	for _, m := range h.members {
		m.mu.Lock()
		stats.Subscriptions += len(m.topics)
		m.mu.Unlock()
	}
	return stats
}

// SubscriberCount returns the number of subscribers attached to topicName.
func (h *Hub) SubscriberCount(topicName string) int {
	value, ok := h.topics.Load(topicName)
	if !ok {
		return 0
	}
	t := value.(*topic)
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}

// Close detaches and closes every subscriber. Subscribe fails afterwards; Publish
// becomes a no-op because no topic has subscribers left.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.stop)

	members := make([]*member, 0, len(h.members))
	for _, m := range h.members {
		members = append(members, m)
	}
	for _, m := range members {
		h.removeLocked(m)
	}
	h.mu.Unlock()

	for _, m := range members {
		m.sub.Close()
	}
	h.watches.Wait()
}

func (h *Hub) watch(m *member) {
	defer h.watches.Done()

	select {
	case <-m.sub.Done():
		h.mu.Lock()
		if current, ok := h.members[m.sub.ID()]; ok && current == m {
			h.removeLocked(m)
		}
		h.mu.Unlock()
	case <-h.stop:
	}
}

// removeLocked detaches m from all its topics. Caller holds h.mu.
func (h *Hub) removeLocked(m *member) {
	m.mu.Lock()
	for name := range m.topics {
		h.detach(name, m.sub.ID())
		h.metrics.subscriptions.Dec()
	}
	m.topics = make(map[string]struct{})
	m.removed = true
	m.mu.Unlock()

	delete(h.members, m.sub.ID())
}

func (h *Hub) attach(topicName string, m *member) {
	for {
		value, _ := h.topics.LoadOrStore(topicName, &topic{subs: make(map[string]*member)})
		t := value.(*topic)

		t.mu.Lock()
		if t.dead {
			t.mu.Unlock()
			continue
		}
		t.subs[m.sub.ID()] = m
		t.mu.Unlock()
		return
	}
}

func (h *Hub) detach(topicName, subscriberID string) {
	value, ok := h.topics.Load(topicName)
	if !ok {
		return
	}
	t := value.(*topic)

	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.subs, subscriberID)
	if len(t.subs) == 0 && !t.dead {
		t.dead = true
		h.topics.CompareAndDelete(topicName, t)
	}
}

func (h *Hub) deliver(m *member, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
		if err != nil {
			m.drops.Add(1)
		} else {
			m.drops.Store(0)
		}
	}()

	return m.sub.Deliver(msg)
}

func encode(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case []byte:
		return p, nil
	case json.RawMessage:
		return p, nil
	default:
		return json.Marshal(payload)
	}
}
