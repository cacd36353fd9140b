package order

import (
	"errors"
	"fmt"
	"time"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when an order has no line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Shop holds the shop and vendor references of an order together with the display
// fields copied from the shop directory when the order is placed.
type Shop struct {
	ShopID      int64
	ShopName    string
	ShopAddress string
	VendorID    int64
	VendorName  string
}

// Customer holds the user reference and the contact details shown to the vendor.
type Customer struct {
	UserID int64
	Name   string
	Email  string
	Phone  string
}

// Order is the aggregate root of the ordering domain.
//
// Order follows these invariants:
//   - orderID is a valid UUID and never changes
//   - items are non-empty, validated, and never change
//   - totalAmount matched the item sum at creation and is never recomputed
//   - status moves only along the Status state machine
//   - orderTime is set once
type Order struct {
	// recordID is the storage surrogate key; zero until the order is persisted
	recordID uint64

	id       kernel.UUID
	shop     Shop
	customer Customer
	items    []LineItem

	totalAmount kernel.Amount
	status      Status

	orderTime           time.Time
	estimatedPickupTime time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewOrder creates an order in Placed status.
//
// The total supplied by the caller is compared against the item sum and rejected when
// the difference exceeds kernel.AmountTolerance; it is never silently corrected.
// orderTime is normalized to UTC. A zero estimatedPickupTime is rejected; callers
// apply their own default before calling.
//
// Example:
//
//	item, _ := order.NewLineItem(1, "Masala Dosa", 50.0, 2, "", true)
//	o, err := order.NewOrder(kernel.NewUUID(), shop, customer,
//	    []order.LineItem{item}, 100.0, time.Now(), time.Now().Add(20*time.Minute))
func NewOrder(
	id kernel.UUID,
	shop Shop,
	customer Customer,
	items []LineItem,
	totalAmount float64,
	orderTime time.Time,
	estimatedPickupTime time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShop(shop),
		o.setCustomer(customer),
		o.setItems(items),
		o.setTimes(orderTime, estimatedPickupTime),
	); err != nil {
		return nil, err
	}

	if err := o.setTotalAmount(totalAmount); err != nil {
		return nil, err
	}

	o.updatedAt = o.orderTime
	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. It re-checks structural invariants
// but trusts the stored total, which was reconciled when the order was created.
func RestoreOrder(
	recordID uint64,
	id kernel.UUID,
	shop Shop,
	customer Customer,
	items []LineItem,
	totalAmount float64,
	status Status,
	orderTime time.Time,
	estimatedPickupTime time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		recordID:      recordID,
		isConstructed: true,
	}

	total, amountErr := kernel.NewAmount("totalAmount", totalAmount)
	if err := errors.Join(
		o.setID(id),
		o.setShop(shop),
		o.setCustomer(customer),
		o.setItems(items),
		o.setTimes(orderTime, estimatedPickupTime),
		amountErr,
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.totalAmount = total
	o.status = status
	o.updatedAt = updatedAt.UTC()
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their business identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) RecordID() uint64               { return o.recordID }
func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) Shop() Shop                     { return o.shop }
func (o *Order) Customer() Customer             { return o.customer }
func (o *Order) TotalAmount() kernel.Amount     { return o.totalAmount }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) OrderTime() time.Time           { return o.orderTime }
func (o *Order) EstimatedPickupTime() time.Time { return o.estimatedPickupTime }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }

// AttachRecordID records the storage key assigned when the order was first persisted.
// It has no effect once a key is set.
func (o *Order) AttachRecordID(recordID uint64) {
	if o.recordID == 0 {
		o.recordID = recordID
	}
}

// Items returns a copy of the line items so callers cannot mutate the aggregate.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ChangeStatus moves the order to next.
//
// Returns:
//   - (true, nil) when the status changed; updatedAt is set to at
//   - (false, nil) when next is already the current status; the order is untouched
//   - (false, error) when the transition is not allowed
func (o *Order) ChangeStatus(next Status, at time.Time) (bool, error) {
	newStatus, changed, err := o.status.TransitionTo(next)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	o.status = newStatus
	o.updatedAt = at.UTC()
	return true, nil
}

// IsPickupOverdue reports whether the order is waiting at the counter longer than grace
// past its estimated pickup time.
func (o *Order) IsPickupOverdue(now time.Time, grace time.Duration) bool {
	return o.status == ReadyForPickup && now.After(o.estimatedPickupTime.Add(grace))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShop(shop Shop) error {
	var problems []error
	if shop.ShopID <= 0 {
		problems = append(problems, errs.NewValueIsRequiredError("shopId"))
	}
	if shop.VendorID <= 0 {
		problems = append(problems, errs.NewValueIsRequiredError("vendorId"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.shop = shop
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.UserID <= 0 {
		return errs.NewValueIsRequiredError("userId")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTimes(orderTime, estimatedPickupTime time.Time) error {
	var problems []error
	if orderTime.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("orderTime"))
	}
	if estimatedPickupTime.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("estimatedPickupTime"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.orderTime = orderTime.UTC()
	o.estimatedPickupTime = estimatedPickupTime.UTC()
	return nil
}

// setTotalAmount must run after setItems.
func (o *Order) setTotalAmount(totalAmount float64) error {
	total, err := kernel.NewAmount("totalAmount", totalAmount)
	if err != nil {
		return err
	}

	var sum kernel.Amount
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}

	if !total.ApproxEqual(sum) {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount",
			fmt.Errorf("%.2f does not match the item sum %.2f", total.Float64(), sum.Float64()),
		)
	}

	o.totalAmount = total
	return nil
}
