package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	AddressID     string `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Notes         string `json:"notes"`
}

// generateOrderNumber builds a human-readable reference like GE-2026-0481.
// The 4-digit suffix can collide, so placement retries against the orders
// table before giving up.
func generateOrderNumber() string {
	return fmt.Sprintf("GE-%d-%04d", time.Now().Year(), rand.Intn(10000))
}

func nextOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		number := generateOrderNumber()
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not allocate a unique order number")
}

// loadCartLines reads the owner's cart joined with live product rows.
// Lines whose product no longer exists are dropped, not fatal.
func loadCartLines(db *gorm.DB, userID string) ([]CartLine, []string, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, nil, err
	}

	var lines []CartLine
	var dangling []string
	for _, item := range items {
		var product models.Product
		err := db.First(&product, "id = ?", item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("cart line %s references missing product %s, skipping", item.ID, item.ProductID)
			dangling = append(dangling, item.ID)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, CartLine{Product: product, Quantity: item.Quantity})
	}
	return lines, dangling, nil
}

// PlaceOrder turns the owner's cart into an immutable order. The header, its
// items and the cart clear commit in one transaction, so a failed placement
// leaves the cart untouched and a successful one always empties it.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var address models.Address
	if err := db.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	lines, _, err := loadCartLines(db, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var profile models.Profile
	userType := models.UserTypeB2C
	if err := db.First(&profile, "id = ?", userID).Error; err == nil {
		userType = profile.UserType
	}

	totals, err := PriceCart(lines, userType)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:   number,
			UserID:        userID,
			AddressID:     address.ID,
			Subtotal:      totals.Subtotal,
			DeliveryFee:   totals.DeliveryFee,
			Total:         totals.Total,
			PaymentMethod: method,
			PaymentStatus: models.PaymentStatusPending,
			OrderStatus:   models.OrderStatusPlaced,
			Notes:         req.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(totals.Lines))
		for _, line := range totals.Lines {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.Product.ID,
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  line.TotalPrice,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			log.Printf("order %s: item write failed after header: %v", order.OrderNumber, err)
			return err
		}
		order.Items = items

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	order.Address = &address
	return &order, nil
}

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery address and payment method are required"})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, ErrAddressNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.
			Preload("Address").
			Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var order models.Order
		if err := db.
			Preload("Address").
			Preload("Items").
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
