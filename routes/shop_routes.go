package routes

import (
	"shopora-backend/controllers"
	middlewares "shopora-backend/middleware"

	"github.com/gin-gonic/gin"
)

func setupShopRoutes(api *gin.RouterGroup) {
	auth := middlewares.AuthRequired()

	cart := api.Group("/cart", auth)
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/items", controllers.AddToCart)
		cart.PUT("/items", controllers.UpdateCartItem)
		cart.DELETE("/items/:productId", controllers.RemoveFromCart)
		cart.DELETE("", controllers.ClearCart)
	}

	wishlist := api.Group("/wishlist", auth)
	{
		wishlist.GET("", controllers.GetWishlist)
		wishlist.POST("/:productId", controllers.AddToWishlist)
		wishlist.DELETE("/:productId", controllers.RemoveFromWishlist)
	}

	orders := api.Group("/orders", auth)
	{
		orders.POST("", controllers.Checkout)
		orders.GET("", controllers.GetUserOrders)
		orders.GET("/:id", controllers.GetOrder)
		orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
		orders.POST("/:id/cancel", controllers.CancelOrder)
	}

	payments := api.Group("/payments")
	{
		payments.POST("/create-intent", auth, controllers.CreatePaymentIntent)
		// The webhook authenticates with the Stripe signature, not a JWT.
		payments.POST("/webhook", controllers.StripeWebhook)
	}
}
