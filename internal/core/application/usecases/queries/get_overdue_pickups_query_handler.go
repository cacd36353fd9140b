package queries

import (
	"context"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverduePickupsQueryHandler reads overdue orders straight from the orders table
// without loading full aggregates.
type GetOverduePickupsQueryHandler struct {
	db *gorm.DB
}

func NewGetOverduePickupsQueryHandler(db *gorm.DB) GetOverduePickupsQueryHandler {
	return GetOverduePickupsQueryHandler{db: db}
}

// Handle returns overdue orders, longest waiting first.
func (h GetOverduePickupsQueryHandler) Handle(
	ctx context.Context,
	query GetOverduePickupsQuery,
) ([]GetOverduePickupsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue := make([]GetOverduePickupsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			vendor_id,
			shop_name,
			customer_name,
			estimated_pickup_time
		FROM orders
		WHERE status = ?
		  AND estimated_pickup_time < ?
		ORDER BY estimated_pickup_time, id
	`, order.ReadyForPickup.String(), query.Deadline()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOverduePickupsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&resp.VendorID,
			&resp.ShopName,
			&resp.CustomerName,
			&resp.EstimatedPickupTime,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id)
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID
		resp.EstimatedPickupTime = resp.EstimatedPickupTime.UTC()
		overdue = append(overdue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
