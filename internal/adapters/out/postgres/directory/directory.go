// Package directory reads shops, vendors and users. These tables are owned by the
// catalog and account flows; the order service only looks rows up.
package directory

import (
	"context"
	"errors"

	"shoporders/internal/core/ports"
	"shoporders/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormShopDirectory struct {
	db *gorm.DB
}

func NewGormShopDirectory(db *gorm.DB) *GormShopDirectory {
	return &GormShopDirectory{db: db}
}

type shopRow struct {
	ShopID      int64
	Name        string
	Address     string
	VendorID    int64
	VendorName  string
	VendorEmail string
}

// GetShop returns the shop together with its owning vendor.
func (d *GormShopDirectory) GetShop(ctx context.Context, shopID int64) (ports.ShopInfo, error) {
	var row shopRow
	result := d.db.WithContext(ctx).Raw(`
		SELECT
			s.id      AS shop_id,
			s.name    AS name,
			s.address AS address,
			v.id      AS vendor_id,
			v.name    AS vendor_name,
			v.email   AS vendor_email
		FROM shops s
		JOIN vendors v ON v.id = s.vendor_id
		WHERE s.id = ?
	`, shopID).Scan(&row)
	if result.Error != nil {
		return ports.ShopInfo{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ShopInfo{}, errs.NewObjectNotFoundError("shopId", shopID)
	}

	return ports.ShopInfo(row), nil
}

type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

type UserDTO struct {
	ID    int64 `gorm:"primaryKey"`
	Name  string
	Email string
	Phone string
}

func (UserDTO) TableName() string {
	return "users"
}

func (d *GormUserDirectory) GetUser(ctx context.Context, userID int64) (ports.UserInfo, error) {
	var dto UserDTO
	if err := d.db.WithContext(ctx).First(&dto, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserInfo{}, errs.NewObjectNotFoundError("userId", userID)
		}
		return ports.UserInfo{}, err
	}

	return ports.UserInfo{
		UserID: dto.ID,
		Name:   dto.Name,
		Email:  dto.Email,
		Phone:  dto.Phone,
	}, nil
}
