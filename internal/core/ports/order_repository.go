// Package ports defines the contracts between the order domain and infrastructure:
// persistence, directories of shops and users, notification fan-out, outgoing events
// and email hand-off. Adapters implement them; use cases depend only on them.
package ports

import (
	"context"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It behaves like a document store keyed by the business order identifier;
// it holds no business logic of its own.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Returns errs.ObjectAlreadyExistsError if an order with the same ID is already stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an existing order (status and updatedAt).
	// Items, total and timestamps set at creation are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its business identifier.
	// Returns errs.ObjectNotFoundError when no order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction ends.
	// Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Exists reports whether an order with the given identifier is stored.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)

	// ListByVendor returns every order of a vendor. The order of the result is not
	// part of the contract; query handlers sort.
	ListByVendor(ctx context.Context, vendorID int64) ([]*order.Order, error)

	// ListByUser returns every order placed by a user, in no guaranteed order.
	ListByUser(ctx context.Context, userID int64) ([]*order.Order, error)
}
