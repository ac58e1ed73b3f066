package orders

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductsMismatch    = errors.New("some products are unavailable or do not exist")
	ErrProductsUnavailable = errors.New("product validation unavailable")
	ErrPaymentUnavailable  = errors.New("payment service unavailable")
	ErrUnknownStatus       = errors.New("unknown order status")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be greater than zero")
)
