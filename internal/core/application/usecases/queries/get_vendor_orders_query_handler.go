package queries

import (
	"context"
	"slices"

	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/core/ports"
)

// GetVendorOrdersQueryHandler lists a vendor's orders for the vendor dashboard.
type GetVendorOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetVendorOrdersQueryHandler(repo ports.OrderRepository) GetVendorOrdersQueryHandler {
	return GetVendorOrdersQueryHandler{repo: repo}
}

// Handle returns the orders sorted by orderTime, newest first. An unknown vendor
// yields an empty, non-nil slice.
func (h GetVendorOrdersQueryHandler) Handle(ctx context.Context, query GetVendorOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.ListByVendor(ctx, query.VendorID())
	if err != nil {
		return nil, err
	}
	return newestFirst(orders), nil
}

// newestFirst sorts in place by orderTime descending; equal times keep store order.
func newestFirst(orders []*order.Order) []*order.Order {
	if orders == nil {
		return []*order.Order{}
	}
	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		return b.OrderTime().Compare(a.OrderTime())
	})
	return orders
}
