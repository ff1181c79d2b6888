package cartControllers

import "errors"

var (
	ErrProductNotFound = errors.New("Product not found")
	ErrInvalidQuantity = errors.New("Quantity must be at least 1")
)
