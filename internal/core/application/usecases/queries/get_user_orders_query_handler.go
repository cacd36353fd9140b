package queries

import (
	"context"

	"shoporders/internal/core/domain/model/order"
	"shoporders/internal/core/ports"
)

type GetUserOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetUserOrdersQueryHandler(repo ports.OrderRepository) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{repo: repo}
}

// Handle returns the user's orders, newest first. Never nil.
func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.ListByUser(ctx, query.UserID())
	if err != nil {
		return nil, err
	}
	return newestFirst(orders), nil
}
