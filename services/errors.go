package services

import (
	"errors"

	"takeout/pkg/apperr"

	"gorm.io/gorm"
)

var (
	ErrCartEmpty        = apperr.Validation("shopping cart is empty")
	ErrInvalidProduct   = apperr.Validation("exactly one of dishId or setmealId is required")
	ErrProductOffSale   = apperr.Validation("product is not on sale")
	ErrReasonRequired   = apperr.Validation("reason is required")
	ErrNoLines          = apperr.Validation("order has no lines")
	ErrInvalidAddress   = apperr.Validation("consignee, phone and detail are required")
	ErrAddressNotFound  = apperr.NotFound("address not found")
	ErrOrderNotFound    = apperr.NotFound("order not found")
	ErrUserNotFound     = apperr.NotFound("user not found")
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrCartItemNotFound = apperr.NotFound("cart item not found")

	ErrMustContactBusiness = apperr.Conflict("order already accepted, please contact the business")
	ErrAlreadyPaid         = apperr.Conflict("order already paid")
	ErrOrderStatus         = apperr.Conflict("order status does not allow this operation")
	// ErrStaleOrderState: the order moved on between read and guarded update.
	ErrStaleOrderState = apperr.Conflict("order state changed concurrently")
	// ErrCartChanged: cart rows vanished while an order was being built from them.
	ErrCartChanged = apperr.Conflict("shopping cart changed, please submit again")

	ErrPaymentDeclined = apperr.External("payment declined")
)

// notFound แปลง gorm.ErrRecordNotFound เป็น sentinel ของ service
func notFound(err error, sentinel *apperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
