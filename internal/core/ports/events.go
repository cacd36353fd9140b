package ports

import (
	"context"
	"time"

	"shoporders/internal/core/domain/model/order"
)

// Order event types published to downstream systems.
const (
	OrderPlacedEvent        = "order.placed"
	OrderStatusChangedEvent = "order.status_changed"
)

// OrderEvent is the integration event describing an order change.
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	ShopID         int64     `json:"shopId"`
	VendorID       int64     `json:"vendorId"`
	UserID         int64     `json:"userId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	ChangedBy      int64     `json:"changedBy,omitempty"`
	TotalAmount    float64   `json:"totalAmount"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewOrderEvent builds an event from the current state of an order.
func NewOrderEvent(eventType string, o *order.Order, previous order.Status, changedBy int64) OrderEvent {
	event := OrderEvent{
		Type:        eventType,
		OrderID:     o.ID().String(),
		ShopID:      o.Shop().ShopID,
		VendorID:    o.Shop().VendorID,
		UserID:      o.Customer().UserID,
		Status:      o.Status().String(),
		ChangedBy:   changedBy,
		TotalAmount: o.TotalAmount().Float64(),
		OccurredAt:  o.UpdatedAt(),
	}
	if previous != order.Unknown {
		event.PreviousStatus = previous.String()
	}
	return event
}

// OrderEventPublisher mirrors order changes to a message broker.
// Implementations must not block the caller on broker round trips.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}
