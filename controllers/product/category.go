package productcontroller

import (
	"errors"
	"net/http"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// categoriesMissing reports whether an error means the categories table has
// not been provisioned (Postgres 42P01). That case degrades to the default
// catalog instead of failing.
func categoriesMissing(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

type categoryWithCount struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// GET /categories — each category carries its count of in-stock products.
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("sort_order ASC").Find(&categories).Error; err != nil {
			if categoriesMissing(err) {
				c.JSON(http.StatusOK, gin.H{"categories": models.DefaultCategories(), "isDefault": true})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		counts := make(map[string]int64)
		var rows []struct {
			Category string
			Total    int64
		}
		if err := db.Model(&models.Product{}).
			Select("category, COUNT(*) AS total").
			Where("in_stock = ?", true).
			Group("category").
			Scan(&rows).Error; err == nil {
			for _, row := range rows {
				counts[row.Category] = row.Total
			}
		}

		listed := make([]categoryWithCount, 0, len(categories))
		for _, cat := range categories {
			listed = append(listed, categoryWithCount{Category: cat, ProductCount: counts[cat.Slug]})
		}
		c.JSON(http.StatusOK, gin.H{"categories": listed})
	}
}
