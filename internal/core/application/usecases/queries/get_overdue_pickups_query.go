package queries

import (
	"errors"
	"time"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/guard"
)

var ErrGetOverduePickupsQueryIsNotConstructed = errors.New(
	"GetOverduePickupsQuery must be created via NewGetOverduePickupsQuery constructor",
)

// GetOverduePickupsQuery finds orders waiting at the counter longer than grace past
// their estimated pickup time.
//
// Example:
//
//	query, _ := NewGetOverduePickupsQuery(time.Now(), 15*time.Minute)
//	overdue, err := handler.Handle(ctx, query)
//	for _, o := range overdue {
//	    fmt.Printf("order %s for vendor %d is waiting since %s\n",
//	        o.OrderID, o.VendorID, o.EstimatedPickupTime)
//	}
type GetOverduePickupsQuery struct {
	now   time.Time
	grace time.Duration
	guard guard.ConstructorGuard
}

func NewGetOverduePickupsQuery(now time.Time, grace time.Duration) (GetOverduePickupsQuery, error) {
	if now.IsZero() {
		return GetOverduePickupsQuery{}, errs.NewValueIsRequiredError("now")
	}
	if grace < 0 {
		return GetOverduePickupsQuery{}, errs.NewValueIsOutOfRangeError("grace", grace, time.Duration(0), "unbounded")
	}
	return GetOverduePickupsQuery{now: now, grace: grace, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOverduePickupsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverduePickupsQueryIsNotConstructed)
}

// Deadline is the latest estimated pickup time that is not yet overdue.
func (q GetOverduePickupsQuery) Deadline() time.Time {
	return q.now.Add(-q.grace).UTC()
}

// GetOverduePickupsQueryResponse is the minimal projection needed to remind a vendor.
type GetOverduePickupsQueryResponse struct {
	OrderID             kernel.UUID
	VendorID            int64
	ShopName            string
	CustomerName        string
	EstimatedPickupTime time.Time
}
