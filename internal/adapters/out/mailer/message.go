// Package mailer hands customer emails to the delivery system. Emails are composed
// here and published as JSON to a RabbitMQ queue consumed by the mail sender; when no
// broker is configured they are written to the log instead.
package mailer

import (
	"fmt"
	"strings"
	"time"

	"shoporders/internal/core/domain/model/order"
)

// Email kinds.
const (
	KindOrderConfirmation = "order_confirmation"
	KindStatusUpdate      = "order_status_update"
)

const pickupLayout = "03:04 PM, 02 January 2006"

// Message is the queue payload understood by the mail sender.
type Message struct {
	Kind    string `json:"kind"`
	OrderID string `json:"orderId"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Composer renders emails. Times are shown in loc.
type Composer struct {
	loc *time.Location
}

// NewComposer creates a Composer. A nil loc means UTC.
func NewComposer(loc *time.Location) Composer {
	if loc == nil {
		loc = time.UTC
	}
	return Composer{loc: loc}
}

func (c Composer) Confirmation(o *order.Order) Message {
	id := o.ID().String()
	shop := o.Shop()

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", greetingName(o.Customer().Name))
	fmt.Fprintf(&b, "Your order #%s has been successfully placed!\n\n", id)
	fmt.Fprintf(&b, "Shop: %s\n", shopLine(shop))
	b.WriteString("Items Ordered:\n")
	for _, item := range o.Items() {
		fmt.Fprintf(&b, "- %s x %d, Price: ₹%.2f\n", item.ProductName(), item.Quantity(), item.UnitPrice().Float64())
	}
	fmt.Fprintf(&b, "\nTotal Amount: ₹%.2f\n", o.TotalAmount().Float64())
	fmt.Fprintf(&b, "Estimated Pickup Time: %s\n\n", o.EstimatedPickupTime().In(c.loc).Format(pickupLayout))
	b.WriteString("Thank you for your order!\n")

	return Message{
		Kind:    KindOrderConfirmation,
		OrderID: id,
		To:      o.Customer().Email,
		Subject: "Food Stall Order Confirmation - Order #" + id,
		Body:    b.String(),
	}
}

func (c Composer) StatusUpdate(o *order.Order) Message {
	id := o.ID().String()

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", greetingName(o.Customer().Name))
	fmt.Fprintf(&b, "Your order #%s at %s is now %s.\n", id, shopLine(o.Shop()), statusPhrase(o.Status()))
	if o.Status() == order.ReadyForPickup {
		fmt.Fprintf(&b, "Please collect it at the counter. Estimated pickup time was %s.\n",
			o.EstimatedPickupTime().In(c.loc).Format(pickupLayout))
	}

	return Message{
		Kind:    KindStatusUpdate,
		OrderID: id,
		To:      o.Customer().Email,
		Subject: fmt.Sprintf("Order #%s: %s", id, statusPhrase(o.Status())),
		Body:    b.String(),
	}
}

func greetingName(name string) string {
	if name == "" {
		return "Customer"
	}
	return name
}

func shopLine(shop order.Shop) string {
	if shop.ShopName == "" {
		return fmt.Sprintf("shop #%d", shop.ShopID)
	}
	if shop.ShopAddress == "" {
		return shop.ShopName
	}
	return shop.ShopName + " (" + shop.ShopAddress + ")"
}

func statusPhrase(s order.Status) string {
	switch s {
	case order.Placed:
		return "placed"
	case order.Preparing:
		return "being prepared"
	case order.ReadyForPickup:
		return "ready for pickup"
	case order.Completed:
		return "completed"
	case order.Cancelled:
		return "cancelled"
	default:
		return strings.ToLower(s.String())
	}
}
