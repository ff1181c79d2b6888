package orderControllers

import "errors"

var (
	ErrAddressNotFound = errors.New("Address not found")
	ErrEmptyCart       = errors.New("Cart is empty")
)
