package order

import (
	"errors"
	"fmt"

	"shoporders/internal/core/domain/model/kernel"
	"shoporders/internal/pkg/errs"
	"shoporders/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem did not come from NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product line of an order. Name, image and veg flag are copied from
// the catalog at order time so the order stays readable after the product changes.
type LineItem struct {
	productID   int64
	productName string
	unitPrice   kernel.Amount
	quantity    int
	imageURL    string
	veg         bool

	guard guard.ConstructorGuard
}

// NewLineItem validates and creates a line item.
// productID must be positive, quantity must be positive and unitPrice non-negative.
func NewLineItem(
	productID int64,
	productName string,
	unitPrice float64,
	quantity int,
	imageURL string,
	veg bool,
) (LineItem, error) {
	item := LineItem{
		productName: productName,
		imageURL:    imageURL,
		veg:         veg,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ProductID() int64         { return i.productID }
func (i LineItem) ProductName() string      { return i.productName }
func (i LineItem) UnitPrice() kernel.Amount { return i.unitPrice }
func (i LineItem) Quantity() int            { return i.quantity }
func (i LineItem) ImageURL() string         { return i.imageURL }
func (i LineItem) Veg() bool                { return i.veg }

// Subtotal returns quantity x unit price.
func (i LineItem) Subtotal() kernel.Amount {
	return i.unitPrice.Times(i.quantity)
}

func (i *LineItem) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsRequiredErrorWithCause("productId", fmt.Errorf("%d is not a product id", productID))
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice float64) error {
	amount, err := kernel.NewAmount("unitPrice", unitPrice)
	if err != nil {
		return err
	}
	i.unitPrice = amount
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
