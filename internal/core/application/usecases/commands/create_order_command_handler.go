package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/core/ports"
	"shoporders/internal/pkg/errs"
)

// CreateOrderCommandHandler places new orders.
//
// The shop and vendor display fields are copied from the shop directory, missing
// customer contact details from the user directory. The order is persisted in Placed
// status and only then pushed to the vendor's live feed.
type CreateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	shops         ports.ShopDirectory
	users         ports.UserDirectory
	broadcaster   *OrderBroadcaster
	defaultPickup time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// defaultPickup is added to the order time when the request carries no pickup estimate.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	shops ports.ShopDirectory,
	users ports.UserDirectory,
	broadcaster *OrderBroadcaster,
	defaultPickup time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		shops:         shops,
		users:         users,
		broadcaster:   broadcaster,
		defaultPickup: defaultPickup,
		now:           time.Now,
		logger:        logger.With("component", "create_order_handler"),
	}
}

// WithClock returns a copy of the handler reading time from now.
func (h CreateOrderCommandHandler) WithClock(now func() time.Time) CreateOrderCommandHandler {
	h.now = now
	return h
}

// Handle validates, persists and announces a new order.
//
// Errors:
//   - validation errors (errs.ErrValueIsRequired, errs.ErrValueIsInvalid, ...) for bad
//     input, an unknown shop or user, or a total that does not match the items
//   - errs.ErrObjectAlreadyExists when a client-supplied orderId is taken
//   - any other error means storage failed and nothing was announced
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	shop, err := h.shops.GetShop(ctx, cmd.ShopID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause("shopId", err)
		}
		return nil, fmt.Errorf("resolve shop %d: %w", cmd.ShopID(), err)
	}

	customer, err := h.resolveCustomer(ctx, cmd.Customer())
	if err != nil {
		return nil, err
	}

	orderTime := h.now()
	pickup := cmd.EstimatedPickupTime()
	if pickup.IsZero() {
		pickup = orderTime.Add(h.defaultPickup)
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		order.Shop{
			ShopID:      shop.ShopID,
			ShopName:    shop.Name,
			ShopAddress: shop.Address,
			VendorID:    shop.VendorID,
			VendorName:  shop.VendorName,
		},
		customer,
		cmd.Items(),
		cmd.TotalAmount(),
		orderTime,
		pickup,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if cmd.ClientSuppliedID() {
		exists, err := orderRepo.Exists(ctx, cmd.OrderID())
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.NewObjectAlreadyExistsError("orderId", cmd.OrderID().String())
		}
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.broadcaster.OrderPlaced(ctx, aggregate)
	return aggregate, nil
}

// resolveCustomer fills blank contact fields from the user directory. A directory
// outage only degrades the display fields; an unknown user rejects the order.
func (h *CreateOrderCommandHandler) resolveCustomer(ctx context.Context, customer order.Customer) (order.Customer, error) {
	if customer.Name != "" && customer.Email != "" && customer.Phone != "" {
		return customer, nil
	}

	user, err := h.users.GetUser(ctx, customer.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return order.Customer{}, errs.NewValueIsInvalidErrorWithCause("userId", err)
		}
		h.logger.WarnContext(ctx, "user directory unavailable, keeping request contact fields",
			"userId", customer.UserID, "error", err)
		return customer, nil
	}

	if customer.Name == "" {
		customer.Name = user.Name
	}
	if customer.Email == "" {
		customer.Email = user.Email
	}
	if customer.Phone == "" {
		customer.Phone = user.Phone
	}
	return customer, nil
}
