package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
	userControllers "github.com/hackwithroshan/autocosmic-shop-sub000/controllers/user"
	"github.com/hackwithroshan/autocosmic-shop-sub000/middleware"
)

// SetupUserRoutes registers profile and admin user-management endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	users := api.Group("/users")
	users.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		users.GET("/me", userControllers.GetMe(db))
		users.PUT("/me", userControllers.UpdateMe(db))

		admin := users.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", userControllers.GetAllUsers(db))
		}
	}
}
