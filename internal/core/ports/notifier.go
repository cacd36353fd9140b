package ports

import (
	"context"
	"fmt"

	"shoporders/internal/core/domain/model/kernel"
)

// Notifier delivers a payload to the live subscribers of a topic.
//
// Delivery is at-most-once and best-effort: subscribers that are not connected at call
// time never see the payload, and a failing subscriber never fails the caller. That is
// why Publish has no error result; it returns how many subscribers accepted the payload.
type Notifier interface {
	Publish(ctx context.Context, topic string, payload any) int
}

// VendorOrdersTopic carries new orders and vendor-facing status echoes for one vendor.
func VendorOrdersTopic(vendorID int64) string {
	return fmt.Sprintf("/topic/vendors/%d/orders", vendorID)
}

// VendorNotificationsTopic carries general notices for one vendor.
func VendorNotificationsTopic(vendorID int64) string {
	return fmt.Sprintf("/topic/vendors/%d/notifications", vendorID)
}

// OrderTopic carries status updates of one order for the customer tracking view.
func OrderTopic(orderID kernel.UUID) string {
	return "/topic/orders/" + orderID.String()
}
