package views_test

import (
	"encoding/json"
	"testing"
	"time"

	"shoporders/internal/core/application/views"
	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomain(t *testing.T) {
	orderTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	item, err := order.NewLineItem(1, "Masala Dosa", 50.0, 2, "https://img/dosa.png", true)
	require.NoError(t, err)

	id := kernel.MustUUIDFromString("0b6f1c1e-5f5b-4c1e-9a44-3f1f0c3f2c11")
	o, err := order.RestoreOrder(9, id,
		order.Shop{ShopID: 7, ShopName: "Dosa Corner", ShopAddress: "Block B", VendorID: 3, VendorName: "Ravi"},
		order.Customer{UserID: 11, Name: "Asha", Email: "asha@example.com", Phone: "900"},
		[]order.LineItem{item}, 100.0, order.ReadyForPickup,
		orderTime, orderTime.Add(20*time.Minute), orderTime.Add(5*time.Minute))
	require.NoError(t, err)

	data, err := json.Marshal(views.FromDomain(o))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 9,
		"orderId": "0b6f1c1e-5f5b-4c1e-9a44-3f1f0c3f2c11",
		"shopId": 7,
		"shopName": "Dosa Corner",
		"shopAddress": "Block B",
		"vendorId": 3,
		"vendorName": "Ravi",
		"userId": 11,
		"customerName": "Asha",
		"customerEmail": "asha@example.com",
		"customerPhone": "900",
		"items": [{
			"productId": 1,
			"productName": "Masala Dosa",
			"priceAtOrder": 50,
			"quantity": 2,
			"imageUrl": "https://img/dosa.png",
			"veg": true
		}],
		"totalAmount": 100,
		"status": "READY_FOR_PICKUP",
		"orderTime": "2025-03-01T12:00:00Z",
		"estimatedPickupTime": "2025-03-01T12:20:00Z",
		"updatedAt": "2025-03-01T12:05:00Z"
	}`, string(data))
}

func TestFromDomainList(t *testing.T) {
	assert.NotNil(t, views.FromDomainList(nil))
	assert.Empty(t, views.FromDomainList(nil))
}
