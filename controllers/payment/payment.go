package paymentControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"os"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /payment/create
func CreatePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID is required"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already paid"})
			return
		}
		if order.PaymentMethod != models.PaymentMethodRazorpay {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This order is not for online payment"})
			return
		}

		client, err := NewClientFromEnv()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		gatewayOrder, err := client.CreateOrder(
			int64(math.Round(order.Total*100)),
			"INR",
			order.OrderNumber,
			map[string]string{"order_id": order.ID, "user_id": userID},
		)
		if err != nil {
			log.Printf("payment intent for order %s failed: %v", order.OrderNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("razorpay_order_id", gatewayOrder.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var profile models.Profile
		_ = db.First(&profile, "id = ?", userID).Error

		c.JSON(http.StatusOK, gin.H{
			"razorpay_order_id": gatewayOrder.ID,
			"razorpay_key":      client.KeyID,
			"amount":            gatewayOrder.Amount,
			"currency":          gatewayOrder.Currency,
			"order_number":      order.OrderNumber,
			"prefill": gin.H{
				"name":    profile.FullName,
				"email":   profile.Email,
				"contact": profile.Phone,
			},
		})
	}
}

// POST /payment/verify
//
// No order state changes unless the signature matches; the update is scoped
// to the caller's own order carrying that gateway order ID.
func VerifyPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment verification data"})
			return
		}

		if !VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, os.Getenv("RAZORPAY_KEY_SECRET")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, userID).
				First(&order).Error; err != nil {
				return err
			}
			return tx.Model(&order).Updates(map[string]interface{}{
				"payment_status":      models.PaymentStatusPaid,
				"order_status":        models.OrderStatusConfirmed,
				"razorpay_payment_id": req.RazorpayPaymentID,
			}).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Payment verified successfully",
			"order": gin.H{
				"id":             order.ID,
				"order_number":   order.OrderNumber,
				"payment_status": models.PaymentStatusPaid,
				"order_status":   models.OrderStatusConfirmed,
			},
		})
	}
}
