package routes

import (
	"github.com/Harshalp4/GreenEpicure/auth"
	"github.com/Harshalp4/GreenEpicure/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/guest", auth.CreateGuestUser(db))
		authGroup.GET("/me", middleware.RequireUser, auth.Me(db))
	}
}
