// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root holding identity, denormalized shop and customer data,
//     immutable line items, the total, and the only mutable field, Status
//   - LineItem: an immutable value object for one ordered product
//   - Status: the lifecycle state machine
//
// Key business rules:
//   - Orders must have a valid identifier, a shop, a vendor, a user and at least one item
//   - Every item has a positive quantity and a non-negative unit price
//   - The total must match the sum of quantity x unit price within kernel.AmountTolerance
//   - Status follows Placed -> Preparing -> ReadyForPickup -> Completed, and
//     Cancelled is reachable from Placed or Preparing only
//   - Re-applying the current status is an idempotent no-op, not an error
//
// Orders are never deleted by this package; terminal statuses are final.
package order
