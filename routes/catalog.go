package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackwithroshan/autocosmic-shop-sub000/config"
	productControllers "github.com/hackwithroshan/autocosmic-shop-sub000/controllers/product"
	"github.com/hackwithroshan/autocosmic-shop-sub000/middleware"
)

// SetupCatalogRoutes registers product and category endpoints. Reads are
// public; writes require an elevated role.
func SetupCatalogRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))

		admin := products.Group("")
		admin.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("", productControllers.CreateProduct(db))
			admin.PUT("/:id", productControllers.UpdateProduct(db))
			admin.DELETE("/:id", productControllers.DeleteProduct(db))
			admin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// Static "export-excel" takes priority over the slug parameter.
		products.GET("/:slug", productControllers.GetProductBySlug(db))
	}

	categories := api.Group("/categories")
	{
		categories.GET("", productControllers.GetAllCategories(db))

		admin := categories.Group("")
		admin.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("", productControllers.CreateCategory(db))
			admin.DELETE("/:id", productControllers.DeleteCategory(db))
		}
	}
}
