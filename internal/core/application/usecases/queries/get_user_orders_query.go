package queries

import (
	"errors"

	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery lists the order history of a customer, newest first.
type GetUserOrdersQuery struct {
	userID int64
	guard  guard.ConstructorGuard
}

func NewGetUserOrdersQuery(userID int64) (GetUserOrdersQuery, error) {
	if userID <= 0 {
		return GetUserOrdersQuery{}, errs.NewValueIsInvalidError("userId")
	}
	return GetUserOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

func (q GetUserOrdersQuery) UserID() int64 { return q.userID }
