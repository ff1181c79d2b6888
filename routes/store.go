package routes

import (
	productcontroller "github.com/Harshalp4/GreenEpicure/controllers/product"
	"github.com/Harshalp4/GreenEpicure/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers the public storefront endpoints. Product
// listings run through OptionalUser so signed-in B2B customers see
// their tier pricing while anonymous visitors get retail prices.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", middleware.OptionalUser, productcontroller.GetProducts(db))
	r.GET("/products/:id", middleware.OptionalUser, productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetCategories(db))
}
