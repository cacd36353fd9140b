package api

import "time"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	OrderID             string         `json:"orderId,omitempty"`
	ShopID              int64          `json:"shopId"`
	UserID              int64          `json:"userId"`
	CustomerName        string         `json:"customerName,omitempty"`
	CustomerEmail       string         `json:"customerEmail,omitempty"`
	CustomerPhone       string         `json:"customerPhone,omitempty"`
	Items               []NewOrderItem `json:"items"`
	TotalAmount         float64        `json:"totalAmount"`
	EstimatedPickupTime *time.Time     `json:"estimatedPickupTime,omitempty"`
}

// NewOrderItem is one requested line of a NewOrder.
type NewOrderItem struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName,omitempty"`
	PriceAtOrder float64 `json:"priceAtOrder"`
	Quantity     int     `json:"quantity"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Veg          bool    `json:"veg,omitempty"`
}

// StatusUpdate is the body of PUT /orders/{orderId}/status.
type StatusUpdate struct {
	NewStatus string `json:"newStatus"`
	VendorID  *int64 `json:"vendorId,omitempty"`
}
