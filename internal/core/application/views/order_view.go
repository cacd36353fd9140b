// Package views holds the external representation of orders shared by the REST
// responses and the live notification payloads, so both channels carry the same shape.
package views

import (
	"time"

	"shoporders/internal/core/domain/model/order"
)

// Order is the full JSON representation of an order.
type Order struct {
	ID                  uint64    `json:"id"`
	OrderID             string    `json:"orderId"`
	ShopID              int64     `json:"shopId"`
	ShopName            string    `json:"shopName"`
	ShopAddress         string    `json:"shopAddress"`
	VendorID            int64     `json:"vendorId"`
	VendorName          string    `json:"vendorName"`
	UserID              int64     `json:"userId"`
	CustomerName        string    `json:"customerName"`
	CustomerEmail       string    `json:"customerEmail"`
	CustomerPhone       string    `json:"customerPhone"`
	Items               []Item    `json:"items"`
	TotalAmount         float64   `json:"totalAmount"`
	Status              string    `json:"status"`
	OrderTime           time.Time `json:"orderTime"`
	EstimatedPickupTime time.Time `json:"estimatedPickupTime"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Item is one line of an Order.
type Item struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	PriceAtOrder float64 `json:"priceAtOrder"`
	Quantity     int     `json:"quantity"`
	ImageURL     string  `json:"imageUrl"`
	Veg          bool    `json:"veg"`
}

// FromDomain maps an aggregate to its representation.
func FromDomain(o *order.Order) Order {
	shop := o.Shop()
	customer := o.Customer()

	items := make([]Item, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, Item{
			ProductID:    item.ProductID(),
			ProductName:  item.ProductName(),
			PriceAtOrder: item.UnitPrice().Float64(),
			Quantity:     item.Quantity(),
			ImageURL:     item.ImageURL(),
			Veg:          item.Veg(),
		})
	}

	return Order{
		ID:                  o.RecordID(),
		OrderID:             o.ID().String(),
		ShopID:              shop.ShopID,
		ShopName:            shop.ShopName,
		ShopAddress:         shop.ShopAddress,
		VendorID:            shop.VendorID,
		VendorName:          shop.VendorName,
		UserID:              customer.UserID,
		CustomerName:        customer.Name,
		CustomerEmail:       customer.Email,
		CustomerPhone:       customer.Phone,
		Items:               items,
		TotalAmount:         o.TotalAmount().Float64(),
		Status:              o.Status().String(),
		OrderTime:           o.OrderTime(),
		EstimatedPickupTime: o.EstimatedPickupTime(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

// FromDomainList maps a slice of aggregates, preserving order. It never returns nil.
func FromDomainList(orders []*order.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomain(o))
	}
	return out
}
