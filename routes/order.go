package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
	orderControllers "github.com/hackwithroshan/autocosmic-shop-sub000/controllers/order"
	paymentControllers "github.com/hackwithroshan/autocosmic-shop-sub000/controllers/payment"
	userControllers "github.com/hackwithroshan/autocosmic-shop-sub000/controllers/user"
	"github.com/hackwithroshan/autocosmic-shop-sub000/mailer"
	"github.com/hackwithroshan/autocosmic-shop-sub000/middleware"
	"github.com/hackwithroshan/autocosmic-shop-sub000/models"
)

// SetupOrderRoutes registers the checkout and order-management endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger, gateway *paymentControllers.Gateway, dispatcher *mailer.Dispatcher) {
	store := orderControllers.NewStore(db)
	users := userControllers.NewUserStore(db)

	resolve := func(email, name, phone string, address models.Address) (*models.User, bool, string, error) {
		return userControllers.ResolveCustomer(users, email, name, phone, address)
	}
	service := orderControllers.NewService(store, gateway, resolve, dispatcher, log)

	orders := api.Group("/orders")
	{
		// Guest checkout: no auth required.
		orders.POST("/payment-intent", paymentControllers.PaymentIntentHandler(gateway, log))
		orders.POST("", orderControllers.PlaceOrderHandler(service))

		authed := orders.Group("")
		authed.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			authed.GET("/my-orders", orderControllers.GetMyOrdersHandler(store))

			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", orderControllers.GetAllOrdersHandler(store))
				admin.GET("/ws", orderControllers.OrderFeedHandler)
				admin.PUT("/:id", orderControllers.UpdateOrderHandler(store))
			}

			authed.GET("/:id", orderControllers.GetOrderByIDHandler(store))
		}
	}
}
