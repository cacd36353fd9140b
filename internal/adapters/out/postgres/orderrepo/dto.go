package orderrepo

import (
	"time"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID                  uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID             uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_orders_order_id"`
	ShopID              int64
	ShopName            string
	ShopAddress         string
	VendorID            int64 `gorm:"index"`
	VendorName          string
	UserID              int64 `gorm:"index"`
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	TotalAmount         float64 `gorm:"type:numeric(12,2)"`
	Status              string
	OrderTime           time.Time
	EstimatedPickupTime time.Time
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderRecordID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	OrderRecordID uint64 `gorm:"index"`
	Position      int
	ProductID     int64
	ProductName   string
	PriceAtOrder  float64 `gorm:"type:numeric(12,2)"`
	Quantity      int
	ImageURL      string
	Veg           bool
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	shop := o.Shop()
	customer := o.Customer()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for idx, item := range o.Items() {
		items = append(items, OrderItemDTO{
			Position:     idx,
			ProductID:    item.ProductID(),
			ProductName:  item.ProductName(),
			PriceAtOrder: item.UnitPrice().Float64(),
			Quantity:     item.Quantity(),
			ImageURL:     item.ImageURL(),
			Veg:          item.Veg(),
		})
	}

	return OrderDTO{
		ID:                  o.RecordID(),
		OrderID:             o.ID().Bytes(),
		ShopID:              shop.ShopID,
		ShopName:            shop.ShopName,
		ShopAddress:         shop.ShopAddress,
		VendorID:            shop.VendorID,
		VendorName:          shop.VendorName,
		UserID:              customer.UserID,
		CustomerName:        customer.Name,
		CustomerEmail:       customer.Email,
		CustomerPhone:       customer.Phone,
		TotalAmount:         o.TotalAmount().Float64(),
		Status:              o.Status().String(),
		OrderTime:           o.OrderTime(),
		EstimatedPickupTime: o.EstimatedPickupTime(),
		UpdatedAt:           o.UpdatedAt(),
		Items:               items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(
			itemDTO.ProductID,
			itemDTO.ProductName,
			itemDTO.PriceAtOrder,
			itemDTO.Quantity,
			itemDTO.ImageURL,
			itemDTO.Veg,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		dto.ID,
		id,
		order.Shop{
			ShopID:      dto.ShopID,
			ShopName:    dto.ShopName,
			ShopAddress: dto.ShopAddress,
			VendorID:    dto.VendorID,
			VendorName:  dto.VendorName,
		},
		order.Customer{
			UserID: dto.UserID,
			Name:   dto.CustomerName,
			Email:  dto.CustomerEmail,
			Phone:  dto.CustomerPhone,
		},
		items,
		dto.TotalAmount,
		status,
		dto.OrderTime,
		dto.EstimatedPickupTime,
		dto.UpdatedAt,
	)
}
