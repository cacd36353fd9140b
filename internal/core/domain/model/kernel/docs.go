// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: the business identifier of an order, wrapping github.com/google/uuid
//   - Amount: a monetary value with the tolerance rules used to reconcile order totals
//
// Values are immutable and safe to share between goroutines.
package kernel
