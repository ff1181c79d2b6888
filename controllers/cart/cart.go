package cartControllers

import (
	"errors"
	"fmt"
	"net/http"

	orderControllers "github.com/Harshalp4/GreenEpicure/controllers/order"
	productcontroller "github.com/Harshalp4/GreenEpicure/controllers/product"
	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CartItemView struct {
	ID        string         `json:"id"`
	Quantity  int            `json:"quantity"`
	Product   models.Product `json:"product"`
	UnitPrice float64        `json:"unit_price"`
	ItemTotal float64        `json:"item_total"`
}

// AddItem resolves the product (ID, then slug), applies the stock and MOQ
// checks, and either inserts a line or bumps the quantity on the existing
// line for the same product. Guests and users share this path; the owner ID
// in the context decides whose cart it is.
func AddItem(db *gorm.DB, userID string, req AddItemRequest) (*models.CartItem, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := productcontroller.ResolveProduct(db, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if !product.InStock {
		return nil, &orderControllers.OutOfStockError{Name: product.Name}
	}
	if req.Quantity < product.MOQ {
		return nil, &orderControllers.BelowMOQError{Name: product.Name, MOQ: product.MOQ}
	}

	var item models.CartItem
	err = db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{UserID: userID, ProductID: product.ID, Quantity: req.Quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	item.Quantity += req.Quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// POST /cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		item, err := AddItem(db, userID, req)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Added to cart", "item": item})
	}
}

// PUT /cart/:id
//
// Quantities below the product's MOQ are rejected, never silently deleted;
// removal is an explicit DELETE.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		var item models.CartItem
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": ErrProductNotFound.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if req.Quantity < product.MOQ {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Minimum order quantity for %s is %d", product.Name, product.MOQ)})
			return
		}

		item.Quantity = req.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "item": item})
	}
}

// DELETE /cart/:id — idempotent: deleting an absent line still succeeds.
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var items []models.CartItem
		if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ut := models.UserTypeB2C
		var profile models.Profile
		if err := db.First(&profile, "id = ?", userID).Error; err == nil {
			ut = profile.UserType
		}

		views := make([]CartItemView, 0, len(items))
		subtotal := 0.0
		itemCount := 0
		for _, item := range items {
			var product models.Product
			// A deleted product drops its line from the view instead of
			// failing the whole cart.
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				continue
			}
			unitPrice := product.DisplayPrice(ut)
			views = append(views, CartItemView{
				ID:        item.ID,
				Quantity:  item.Quantity,
				Product:   product,
				UnitPrice: unitPrice,
				ItemTotal: unitPrice * float64(item.Quantity),
			})
			subtotal += unitPrice * float64(item.Quantity)
			itemCount += item.Quantity
		}

		c.JSON(http.StatusOK, gin.H{
			"items":      views,
			"subtotal":   subtotal,
			"item_count": itemCount,
			"userType":   ut,
		})
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func statusFor(err error) int {
	var oos *orderControllers.OutOfStockError
	var moq *orderControllers.BelowMOQError
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.As(err, &oos), errors.As(err, &moq), errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
