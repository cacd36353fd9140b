package ports

import "context"

// ShopInfo is the read-only view of a shop and its owning vendor.
type ShopInfo struct {
	ShopID      int64
	Name        string
	Address     string
	VendorID    int64
	VendorName  string
	VendorEmail string
}

// UserInfo is the read-only view of a registered customer.
type UserInfo struct {
	UserID int64
	Name   string
	Email  string
	Phone  string
}

// ShopDirectory resolves shops for the display fields copied onto new orders.
type ShopDirectory interface {
	// GetShop returns errs.ObjectNotFoundError for unknown shops.
	GetShop(ctx context.Context, shopID int64) (ShopInfo, error)
}

// UserDirectory resolves customers for contact details missing from a request.
type UserDirectory interface {
	// GetUser returns errs.ObjectNotFoundError for unknown users.
	GetUser(ctx context.Context, userID int64) (UserInfo, error)
}
