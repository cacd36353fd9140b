package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shoporders/internal/core/application/views"
	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/core/ports"
)

const defaultSideEffectTimeout = 10 * time.Second

// OrderBroadcaster announces committed order changes.
//
// Live subscribers are notified synchronously through the Notifier, which never blocks
// on slow consumers. Email hand-off and the broker event run in the background with
// their own timeout; their failures are logged and never reach the caller.
type OrderBroadcaster struct {
	notifier ports.Notifier
	events   ports.OrderEventPublisher
	mailer   ports.Mailer
	logger   *slog.Logger

	timeout time.Duration
	wg      sync.WaitGroup
}

// NewOrderBroadcaster creates a broadcaster. A nil logger falls back to slog.Default.
func NewOrderBroadcaster(
	notifier ports.Notifier,
	events ports.OrderEventPublisher,
	mailer ports.Mailer,
	logger *slog.Logger,
) *OrderBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderBroadcaster{
		notifier: notifier,
		events:   events,
		mailer:   mailer,
		logger:   logger.With("component", "order_broadcaster"),
		timeout:  defaultSideEffectTimeout,
	}
}

// OrderPlaced pushes a new order to its vendor and starts the confirmation email.
func (b *OrderBroadcaster) OrderPlaced(ctx context.Context, o *order.Order) {
	view := views.FromDomain(o)
	delivered := b.notifier.Publish(ctx, ports.VendorOrdersTopic(view.VendorID), view)

	b.logger.InfoContext(ctx, "order placed",
		"orderId", view.OrderID,
		"vendorId", view.VendorID,
		"subscribers", delivered,
	)

	event := ports.NewOrderEvent(ports.OrderPlacedEvent, o, order.Unknown, 0)
	b.background(ctx, "order confirmation email", func(ctx context.Context) error {
		return b.mailer.SendOrderConfirmation(ctx, o)
	})
	b.background(ctx, "order placed event", func(ctx context.Context) error {
		return b.events.PublishOrderEvent(ctx, event)
	})
}

// StatusChanged pushes the updated order to the order topic and echoes it to the vendor.
func (b *OrderBroadcaster) StatusChanged(ctx context.Context, o *order.Order, previous order.Status, changedBy int64) {
	view := views.FromDomain(o)
	toCustomer := b.notifier.Publish(ctx, ports.OrderTopic(o.ID()), view)
	toVendor := b.notifier.Publish(ctx, ports.VendorOrdersTopic(view.VendorID), view)

	b.logger.InfoContext(ctx, "order status changed",
		"orderId", view.OrderID,
		"from", previous.String(),
		"to", view.Status,
		"changedBy", changedBy,
		"orderSubscribers", toCustomer,
		"vendorSubscribers", toVendor,
	)

	event := ports.NewOrderEvent(ports.OrderStatusChangedEvent, o, previous, changedBy)
	b.background(ctx, "order status email", func(ctx context.Context) error {
		return b.mailer.SendStatusUpdate(ctx, o)
	})
	b.background(ctx, "order status event", func(ctx context.Context) error {
		return b.events.PublishOrderEvent(ctx, event)
	})
}

// Wait blocks until all background side effects started so far have finished.
func (b *OrderBroadcaster) Wait() {
	b.wg.Wait()
}

// background runs fn detached from the request lifetime. The order passed into fn
// must not be mutated afterwards; handlers never touch an order after broadcasting it.
func (b *OrderBroadcaster) background(ctx context.Context, what string, fn func(context.Context) error) {
	detached := context.WithoutCancel(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(detached, b.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			b.logger.WarnContext(ctx, "background side effect failed", "what", what, "error", err)
		}
	}()
}
