package adminController

import (
	"errors"
	"net/http"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Price          *float64 `json:"price"`
	B2BPrice       *float64 `json:"b2b_price"`
	MOQ            *int     `json:"moq"`
	Unit           string   `json:"unit"`
	ImageURL       string   `json:"image_url"`
	Certifications []string `json:"certifications"`
	InStock        *bool    `json:"in_stock"`
	Featured       *bool    `json:"featured"`
}

// GET /admin/products — all products, out-of-stock included.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Name == "" || req.Category == "" || req.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, category, and price are required"})
			return
		}

		moq := 1
		if req.MOQ != nil {
			moq = *req.MOQ
		}
		unit := req.Unit
		if unit == "" {
			unit = "kg"
		}
		inStock := true
		if req.InStock != nil {
			inStock = *req.InStock
		}
		featured := false
		if req.Featured != nil {
			featured = *req.Featured
		}

		product := models.Product{
			Name:           req.Name,
			Slug:           models.Slugify(req.Name),
			Description:    req.Description,
			Category:       req.Category,
			Price:          *req.Price,
			B2BPrice:       req.B2BPrice,
			MOQ:            moq,
			Unit:           unit,
			ImageURL:       req.ImageURL,
			Certifications: req.Certifications,
			InStock:        inStock,
			Featured:       featured,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != "" {
			updates["name"] = req.Name
			updates["slug"] = models.Slugify(req.Name)
		}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if req.Category != "" {
			updates["category"] = req.Category
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.B2BPrice != nil {
			// A non-positive wholesale price clears tier pricing; b2b buyers
			// fall back to the standard price.
			if *req.B2BPrice > 0 {
				updates["b2b_price"] = *req.B2BPrice
			} else {
				updates["b2b_price"] = nil
			}
		}
		if req.MOQ != nil {
			updates["moq"] = *req.MOQ
		}
		if req.Unit != "" {
			updates["unit"] = req.Unit
		}
		if req.ImageURL != "" {
			updates["image_url"] = req.ImageURL
		}
		if req.InStock != nil {
			updates["in_stock"] = *req.InStock
		}
		if req.Featured != nil {
			updates["featured"] = *req.Featured
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		if req.Certifications != nil {
			product.Certifications = req.Certifications
			if err := db.Save(&product).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
	}
}

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
