package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
	paymentControllers "github.com/hackwithroshan/autocosmic-shop-sub000/controllers/payment"
	"github.com/hackwithroshan/autocosmic-shop-sub000/mailer"
)

// SetupRoutes is the single entry point that wires every route group. All
// collaborators are constructed once here and passed down; nothing reaches
// for globals.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	gateway := paymentControllers.NewGateway(cfg)
	dispatcher := mailer.NewDispatcher(cfg, log)

	api := r.Group("/api")

	SetupAuthRoutes(api, db, cfg, log)
	SetupCatalogRoutes(api, db, cfg)
	SetupOrderRoutes(api, db, cfg, log, gateway, dispatcher)
	SetupUserRoutes(api, db, cfg)
}
