package orderControllers

import (
	"fmt"

	"github.com/Harshalp4/GreenEpicure/models"
)

// Delivery is a flat fee, waived once the subtotal crosses the free-delivery
// threshold.
const (
	FreeDeliveryThreshold = 500.0
	DeliveryFlatFee       = 50.0
)

type OutOfStockError struct{ Name string }

func (e *OutOfStockError) Error() string { return e.Name + " is out of stock" }

type BelowMOQError struct {
	Name string
	MOQ  int
}

func (e *BelowMOQError) Error() string {
	return fmt.Sprintf("Minimum order quantity for %s is %d", e.Name, e.MOQ)
}

type CartLine struct {
	Product  models.Product
	Quantity int
}

type PricedLine struct {
	Product    models.Product
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

type CartTotals struct {
	Lines       []PricedLine
	Subtotal    float64
	DeliveryFee float64
	Total       float64
}

func DeliveryFee(subtotal float64) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return DeliveryFlatFee
}

// PriceCart prices each line for the customer's tier and computes the order
// totals. It fails on any out-of-stock line or any quantity below the
// product's MOQ; no partial result is returned. Pure: no database access.
func PriceCart(lines []CartLine, userType models.UserType) (*CartTotals, error) {
	totals := &CartTotals{Lines: make([]PricedLine, 0, len(lines))}

	for _, line := range lines {
		if !line.Product.InStock {
			return nil, &OutOfStockError{Name: line.Product.Name}
		}
		if line.Quantity < line.Product.MOQ {
			return nil, &BelowMOQError{Name: line.Product.Name, MOQ: line.Product.MOQ}
		}

		unitPrice := line.Product.DisplayPrice(userType)
		totalPrice := unitPrice * float64(line.Quantity)
		totals.Subtotal += totalPrice
		totals.Lines = append(totals.Lines, PricedLine{
			Product:    line.Product,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}

	totals.DeliveryFee = DeliveryFee(totals.Subtotal)
	totals.Total = totals.Subtotal + totals.DeliveryFee
	return totals, nil
}
