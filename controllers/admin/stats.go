package adminController

import (
	"net/http"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /admin/stats — the dashboard's aggregate figures.
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders, pendingOrders, totalCustomers, totalProducts int64

		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("order_status IN ?", []models.OrderStatus{
				models.OrderStatusPlaced, models.OrderStatusConfirmed, models.OrderStatusProcessing,
			}).
			Count(&pendingOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Profile{}).Where("is_admin = ?", false).Count(&totalCustomers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		type statusCount struct {
			OrderStatus models.OrderStatus `json:"order_status"`
			Count       int64              `json:"count"`
		}
		var statusCounts []statusCount
		if err := db.Model(&models.Order{}).
			Select("order_status, COUNT(*) as count").
			Group("order_status").
			Scan(&statusCounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ordersByStatus := make(map[models.OrderStatus]int64, len(statusCounts))
		for _, sc := range statusCounts {
			ordersByStatus[sc.OrderStatus] = sc.Count
		}

		var recentOrders []models.Order
		if err := db.Order("created_at DESC").Limit(5).Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"stats": gin.H{
				"totalOrders":    totalOrders,
				"pendingOrders":  pendingOrders,
				"totalRevenue":   totalRevenue,
				"totalCustomers": totalCustomers,
				"totalProducts":  totalProducts,
			},
			"ordersByStatus": ordersByStatus,
			"recentOrders":   recentOrders,
		})
	}
}
