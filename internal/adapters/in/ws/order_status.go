package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"shoporders/internal/core/application/usecases/commands"
	"shoporders/internal/core/domain/model/order"
)

// UpdateOrderStatusDestination receives status changes from vendor dashboards.
const UpdateOrderStatusDestination = AppPrefix + "order.updateStatus"

// OrderStatusUpdater is the use case behind UpdateOrderStatusDestination.
type OrderStatusUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
}

// StatusUpdateMessage is the body of a SEND to UpdateOrderStatusDestination.
type StatusUpdateMessage struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
	VendorID  int64  `json:"vendorId"`
}

// UpdateOrderStatusHandler adapts the status update use case to a SEND handler.
// The updated order reaches the client through its topic subscriptions, not as a reply.
func UpdateOrderStatusHandler(updater OrderStatusUpdater) HandlerFunc {
	return func(ctx context.Context, body json.RawMessage) error {
		var msg StatusUpdateMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("decode status update: %w", err)
		}

		cmd, err := commands.NewUpdateOrderStatusCommand(msg.OrderID, msg.NewStatus, msg.VendorID)
		if err != nil {
			return err
		}

		if _, err = updater.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("update status of order %s: %w", msg.OrderID, err)
		}
		return nil
	}
}
