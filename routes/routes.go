package routes

import (
	"os"
	"time"

	"shopora-backend/controllers"
	middlewares "shopora-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

// SetupRoutes mounts the API under /api/v1 plus the swagger UI.
func SetupRoutes(r *gin.Engine) {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middlewares.ErrorHandler())
	r.Use(middlewares.RateLimit(rate.Limit(10), 30))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	setupAuthRoutes(api)
	setupCatalogRoutes(api)
	setupShopRoutes(api)
	setupDashboardRoutes(api)
}

func setupCatalogRoutes(api *gin.RouterGroup) {
	auth := middlewares.AuthRequired()

	products := api.Group("/products")
	{
		products.GET("", controllers.ListProducts)
		products.GET("/:id", controllers.GetProduct)
		products.POST("", auth, controllers.AddProduct)
		products.PUT("/:id", auth, controllers.UpdateProduct)
		products.DELETE("/:id", auth, controllers.DeleteProduct)
	}

	api.GET("/banners", controllers.ListBanners)
	api.GET("/homepage-sections", controllers.ListHomepageSections)
	api.GET("/sellers/nearby", controllers.NearbySellers)
}
