package ports

import (
	"context"

	"shoporders/internal/core/domain/model/order"
)

// Mailer hands customer emails to the delivery system. Callers invoke it without
// waiting for the outcome; errors are only logged.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
	SendStatusUpdate(ctx context.Context, o *order.Order) error
}
