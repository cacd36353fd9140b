package commands

import (
	"errors"
	"fmt"
	"time"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line as it arrives from a client.
type OrderItemInput struct {
	ProductID    int64
	ProductName  string
	PriceAtOrder float64
	Quantity     int
	ImageURL     string
	Veg          bool
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("", 7, order.Customer{UserID: 11},
//	    []OrderItemInput{{ProductID: 1, ProductName: "Masala Dosa", PriceAtOrder: 50, Quantity: 2}},
//	    100.0, time.Time{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	clientSuppliedID    bool
	shopID              int64
	customer            order.Customer
	items               []order.LineItem
	totalAmount         float64
	estimatedPickupTime time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape.
//
// An empty orderID asks the service to generate one. customer must carry the userId;
// missing contact fields are filled from the user directory by the handler. A zero
// estimatedPickupTime selects the configured default. The total is only checked for
// sign here; reconciliation against the item sum happens in the domain.
func NewCreateOrderCommand(
	orderID string,
	shopID int64,
	customer order.Customer,
	items []OrderItemInput,
	totalAmount float64,
	estimatedPickupTime time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totalAmount:         totalAmount,
		estimatedPickupTime: estimatedPickupTime,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShopID(shopID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID           { return c.orderID }
func (c CreateOrderCommand) ShopID() int64                  { return c.shopID }
func (c CreateOrderCommand) Customer() order.Customer       { return c.customer }
func (c CreateOrderCommand) TotalAmount() float64           { return c.totalAmount }
func (c CreateOrderCommand) EstimatedPickupTime() time.Time { return c.estimatedPickupTime }

// ClientSuppliedID reports whether the caller chose the order identifier.
func (c CreateOrderCommand) ClientSuppliedID() bool { return c.clientSuppliedID }

// Items returns a copy of the validated line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		c.orderID = kernel.NewUUID()
		return nil
	}

	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	c.orderID = id
	c.clientSuppliedID = true
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID int64) error {
	if shopID <= 0 {
		return errs.NewValueIsRequiredError("shopId")
	}
	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if customer.UserID <= 0 {
		return errs.NewValueIsRequiredError("userId")
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []OrderItemInput) error {
	if len(inputs) == 0 {
		return order.ErrItemsAreRequired
	}

	items := make([]order.LineItem, 0, len(inputs))
	var problems []error
	for idx, in := range inputs {
		item, err := order.NewLineItem(in.ProductID, in.ProductName, in.PriceAtOrder, in.Quantity, in.ImageURL, in.Veg)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.items = items
	return nil
}
