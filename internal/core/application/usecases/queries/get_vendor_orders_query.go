package queries

import (
	"errors"

	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/guard"
)

var ErrGetVendorOrdersQueryIsNotConstructed = errors.New(
	"GetVendorOrdersQuery must be created via NewGetVendorOrdersQuery constructor",
)

// GetVendorOrdersQuery lists every order of a vendor, newest first.
type GetVendorOrdersQuery struct {
	vendorID int64
	guard    guard.ConstructorGuard
}

func NewGetVendorOrdersQuery(vendorID int64) (GetVendorOrdersQuery, error) {
	if vendorID <= 0 {
		return GetVendorOrdersQuery{}, errs.NewValueIsInvalidError("vendorId")
	}
	return GetVendorOrdersQuery{vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorOrdersQueryIsNotConstructed)
}

func (q GetVendorOrdersQuery) VendorID() int64 { return q.vendorID }
