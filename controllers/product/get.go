package productcontroller

import (
	"errors"
	"net/http"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResolveProduct looks a product up by primary ID first, then by slug. Every
// place that accepts a product reference goes through this, so database IDs
// and catalog slugs are interchangeable.
func ResolveProduct(db *gorm.DB, ref string) (*models.Product, error) {
	var product models.Product
	err := db.First(&product, "id = ?", ref).Error
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := db.First(&product, "slug = ?", ref).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// userType reads the caller's tier from their profile; anonymous callers and
// guests price as b2c.
func userType(db *gorm.DB, c *gin.Context) models.UserType {
	userID, exists := c.Get("user_id")
	if !exists {
		return models.UserTypeB2C
	}
	var profile models.Profile
	if err := db.First(&profile, "id = ?", userID).Error; err != nil {
		return models.UserTypeB2C
	}
	return profile.UserType
}

type pricedProduct struct {
	models.Product
	DisplayPrice float64 `json:"display_price"`
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).
			Where("in_stock = ?", true).
			Order("created_at DESC")

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if c.Query("featured") == "true" {
			query = query.Where("featured = ?", true)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ut := userType(db, c)
		priced := make([]pricedProduct, 0, len(products))
		for _, p := range products {
			priced = append(priced, pricedProduct{Product: p, DisplayPrice: p.DisplayPrice(ut)})
		}

		c.JSON(http.StatusOK, gin.H{"products": priced, "userType": ut})
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := ResolveProduct(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		ut := userType(db, c)
		c.JSON(http.StatusOK, gin.H{
			"product":  pricedProduct{Product: *product, DisplayPrice: product.DisplayPrice(ut)},
			"userType": ut,
		})
	}
}
