package routes

import (
	"shopora-backend/controllers"
	middlewares "shopora-backend/middleware"
	"shopora-backend/models"

	"github.com/gin-gonic/gin"
)

func setupDashboardRoutes(api *gin.RouterGroup) {
	auth := middlewares.AuthRequired()

	seller := api.Group("/seller", auth)
	{
		// Any customer may apply; the role flips to seller on approval.
		seller.POST("/apply", controllers.ApplySeller)

		approved := seller.Group("", middlewares.RequireRoles(models.RoleSeller, models.RoleAdmin))
		{
			approved.GET("/me", controllers.GetMyStore)
			approved.PUT("/me", controllers.UpdateMyStore)
			approved.GET("/products", controllers.GetMyProducts)
			approved.GET("/orders", controllers.GetSellerOrders)
			approved.GET("/stats", controllers.GetSellerStats)
		}
	}

	vendor := api.Group("/vendor", auth, middlewares.RequireRoles(models.RoleVendor, models.RoleAdmin))
	{
		vendor.GET("/products", controllers.GetMyProducts)
		vendor.GET("/orders", controllers.GetVendorOrders)
		vendor.GET("/stats", controllers.GetVendorStats)
	}

	admin := api.Group("/admin", auth, middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/users/:id/role", controllers.UpdateUserRole)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.GET("/sellers", controllers.ListSellers)
		admin.POST("/sellers/:id/decision", controllers.DecideSeller)
		admin.PATCH("/sellers/:id/suspend", controllers.SuspendSeller)

		admin.GET("/orders", controllers.ListAllOrders)
		admin.GET("/stats", controllers.PlatformStats)

		admin.GET("/banners", controllers.ListAllBanners)
		admin.POST("/banners", controllers.CreateBanner)
		admin.PUT("/banners/:id", controllers.UpdateBanner)
		admin.DELETE("/banners/:id", controllers.DeleteBanner)

		admin.GET("/homepage-sections", controllers.ListAllHomepageSections)
		admin.POST("/homepage-sections", controllers.CreateHomepageSection)
		admin.PUT("/homepage-sections/:id", controllers.UpdateHomepageSection)
		admin.DELETE("/homepage-sections/:id", controllers.DeleteHomepageSection)
	}
}
