package adminController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateOrderRequest struct {
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
}

type adminOrder struct {
	models.Order
	Profile *models.Profile `json:"profile"`
}

// GET /admin/orders — newest first, optional status filter, limit/offset
// paging, enriched with the buyer's profile.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		query := db.Preload("Items").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset)
		if status := c.Query("status"); status != "" {
			query = query.Where("order_status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		userIDs := make([]string, 0, len(orders))
		seen := make(map[string]bool)
		for _, o := range orders {
			if !seen[o.UserID] {
				seen[o.UserID] = true
				userIDs = append(userIDs, o.UserID)
			}
		}

		profileMap := make(map[string]models.Profile)
		if len(userIDs) > 0 {
			var profiles []models.Profile
			if err := db.Where("id IN ?", userIDs).Find(&profiles).Error; err == nil {
				for _, p := range profiles {
					profileMap[p.ID] = p
				}
			}
		}

		enriched := make([]adminOrder, 0, len(orders))
		for _, o := range orders {
			ao := adminOrder{Order: o}
			if p, ok := profileMap[o.UserID]; ok {
				profile := p
				ao.Profile = &profile
			}
			enriched = append(enriched, ao)
		}

		c.JSON(http.StatusOK, gin.H{"orders": enriched, "limit": limit, "offset": offset})
	}
}

// PUT /admin/orders/:id — status-only updates, validated against the closed
// enumerations. Everything else on an order is immutable.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.OrderStatus != "" {
			status, err := models.ParseOrderStatus(req.OrderStatus)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["order_status"] = status
		}
		if req.PaymentStatus != "" {
			status, err := models.ParsePaymentStatus(req.PaymentStatus)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["payment_status"] = status
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_status or payment_status is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": order})
	}
}
