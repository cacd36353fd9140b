package commands

import (
	"errors"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to a new status.
//
// actingVendorID identifies who requested the change. It is recorded in logs and
// outgoing events; zero means the caller did not say.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	newStatus      order.Status
	actingVendorID int64

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses the order identifier and status name.
// Status names are matched case-insensitively against the wire names (PLACED, PREPARING, ...).
func NewUpdateOrderStatusCommand(orderID, newStatus string, actingVendorID int64) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setActingVendorID(actingVendorID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateOrderStatusCommand) NewStatus() order.Status { return c.newStatus }
func (c UpdateOrderStatusCommand) ActingVendorID() int64   { return c.actingVendorID }

func (c *UpdateOrderStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus string) error {
	if newStatus == "" {
		return errs.NewValueIsRequiredError("status")
	}
	status, err := order.ParseStatus(newStatus)
	if err != nil {
		return err
	}
	c.newStatus = status
	return nil
}

func (c *UpdateOrderStatusCommand) setActingVendorID(actingVendorID int64) error {
	if actingVendorID < 0 {
		return errs.NewValueIsInvalidError("vendorId")
	}
	c.actingVendorID = actingVendorID
	return nil
}
