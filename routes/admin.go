package routes

import (
	adminController "github.com/Harshalp4/GreenEpicure/controllers/admin"
	"github.com/Harshalp4/GreenEpicure/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the back office endpoints. Every route in
// the group passes RequireAdmin, which checks the is_admin flag on the
// caller's profile.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin", middleware.RequireAdmin(db))
	{
		admin.GET("/products", adminController.GetProducts(db))
		admin.POST("/products", adminController.CreateProduct(db))
		admin.PUT("/products/:id", adminController.UpdateProduct(db))
		admin.DELETE("/products/:id", adminController.DeleteProduct(db))
		admin.GET("/products/export-excel", adminController.ExportProductsToExcel(db))

		admin.GET("/categories", adminController.GetCategories(db))
		admin.POST("/categories", adminController.CreateCategory(db))
		admin.PUT("/categories/:id", adminController.UpdateCategory(db))
		admin.DELETE("/categories/:id", adminController.DeleteCategory(db))

		admin.GET("/orders", adminController.GetOrders(db))
		admin.PUT("/orders/:id", adminController.UpdateOrder(db))
		admin.GET("/orders/export-excel", adminController.ExportOrdersToExcel(db))

		admin.GET("/customers", adminController.GetCustomers(db))
		admin.GET("/stats", adminController.GetStats(db))
		admin.POST("/upload", adminController.UploadImage())
	}
}
