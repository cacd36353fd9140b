package commands

import (
	"context"
	"log/slog"
	"time"

	"shoporders/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler applies status transitions.
//
// Commands for the same order are serialized twice: by an in-process key lock, which
// keeps two requests from racing on the read-modify-write, and by a row lock taken in
// the transaction, which covers other instances sharing the database. Different orders
// never wait on each other.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	locks       KeyLocker
	broadcaster *OrderBroadcaster
	now         func() time.Time
	logger      *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks KeyLocker,
	broadcaster *OrderBroadcaster,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		locks:       locks,
		broadcaster: broadcaster,
		now:         time.Now,
		logger:      logger.With("component", "update_order_status_handler"),
	}
}

// WithClock returns a copy of the handler reading time from now.
func (h UpdateOrderStatusCommandHandler) WithClock(now func() time.Time) UpdateOrderStatusCommandHandler {
	h.now = now
	return h
}

// Handle moves the order to the requested status and returns the resulting order.
//
// Requesting the status the order already has is a no-op: nothing is written and
// nothing is broadcast, so a retried request never produces a second notification.
//
// Errors:
//   - errs.ErrObjectNotFound when the order does not exist
//   - errs.ErrStatusTransitionIsInvalid when the move is not allowed
//   - any other error means storage failed and nothing was broadcast
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock, err := h.locks.Lock(ctx, cmd.OrderID().String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	changed, err := aggregate.ChangeStatus(cmd.NewStatus(), h.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		h.logger.DebugContext(ctx, "status unchanged, skipping update",
			"orderId", cmd.OrderID().String(), "status", previous.String())
		return aggregate, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The change is durable from here on. If the process dies before the broadcast
	// below, subscribers miss this update; clients recover by re-reading the order.
	h.broadcaster.StatusChanged(ctx, aggregate, previous, cmd.ActingVendorID())
	return aggregate, nil
}
