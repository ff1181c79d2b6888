package routes

import (
	addressControllers "github.com/Harshalp4/GreenEpicure/controllers/address"
	cartControllers "github.com/Harshalp4/GreenEpicure/controllers/cart"
	orderControllers "github.com/Harshalp4/GreenEpicure/controllers/order"
	paymentControllers "github.com/Harshalp4/GreenEpicure/controllers/payment"
	"github.com/Harshalp4/GreenEpicure/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the endpoints that need an authenticated
// user: cart, addresses, orders and payment.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	user := r.Group("/", middleware.RequireUser)
	{
		user.GET("/cart", cartControllers.GetCart(db))
		user.POST("/cart", cartControllers.AddCartItem(db))
		user.PUT("/cart/:id", cartControllers.UpdateCartItem(db))
		user.DELETE("/cart/:id", cartControllers.DeleteCartItem(db))
		user.DELETE("/cart", cartControllers.ClearCart(db))

		user.GET("/addresses", addressControllers.GetAddresses(db))
		user.POST("/addresses", addressControllers.CreateAddress(db))
		user.PUT("/addresses/:id", addressControllers.UpdateAddress(db))
		user.DELETE("/addresses/:id", addressControllers.DeleteAddress(db))

		user.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		user.POST("/orders", orderControllers.PlaceOrderHandler(db))
		user.GET("/orders/:id", orderControllers.GetOrderByIDHandler(db))

		user.POST("/payment/create", paymentControllers.CreatePaymentHandler(db))
		user.POST("/payment/verify", paymentControllers.VerifyPaymentHandler(db))
	}
}
