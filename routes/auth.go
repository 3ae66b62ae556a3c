package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/auth"
	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
)

// SetupAuthRoutes registers the public /api/auth/* endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db, cfg, log))
		authGroup.POST("/login", auth.LoginHandler(db, cfg, log))
	}
}
