package adminController

import (
	"errors"
	"log"
	"net/http"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type customerStats struct {
	models.Profile
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

// totalsFor sums a customer's order count and paid spend. A fetch failure
// degrades to zeros so one bad row never sinks the whole listing.
func totalsFor(db *gorm.DB, userID string) (int, float64) {
	var orders []models.Order
	if err := db.Select("total", "payment_status").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		log.Printf("customer %s: order totals unavailable: %v", userID, err)
		return 0, 0
	}

	spent := 0.0
	for _, o := range orders {
		if o.PaymentStatus == models.PaymentStatusPaid {
			spent += o.Total
		}
	}
	return len(orders), spent
}

// GET /admin/customers
// GET /admin/customers?id=<profile id> — one customer with full order history.
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Query("id"); id != "" {
			var customer models.Profile
			if err := db.First(&customer, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			var orders []models.Order
			if err := db.Preload("Items").
				Where("user_id = ?", id).
				Order("created_at DESC").
				Find(&orders).Error; err != nil {
				log.Printf("customer %s: order history unavailable: %v", id, err)
				orders = nil
			}

			count, spent := len(orders), 0.0
			for _, o := range orders {
				if o.PaymentStatus == models.PaymentStatusPaid {
					spent += o.Total
				}
			}

			c.JSON(http.StatusOK, gin.H{
				"customer": customerStats{Profile: customer, OrderCount: count, TotalSpent: spent},
				"orders":   orders,
			})
			return
		}

		var profiles []models.Profile
		if err := db.Where("is_admin = ?", false).
			Order("created_at DESC").
			Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		customers := make([]customerStats, 0, len(profiles))
		for _, p := range profiles {
			count, spent := totalsFor(db, p.ID)
			customers = append(customers, customerStats{Profile: p, OrderCount: count, TotalSpent: spent})
		}

		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}
