package routes

import (
	"shopora-backend/controllers"
	middlewares "shopora-backend/middleware"

	"github.com/gin-gonic/gin"
)

func setupAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.Refresh)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/me", middlewares.AuthRequired(), controllers.Me)
	}

	users := api.Group("/users", middlewares.AuthRequired())
	{
		users.PUT("/me", controllers.UpdateProfile)
		users.POST("/me/avatar", controllers.UploadAvatar)
		users.PUT("/me/password", controllers.ChangePassword)
		users.POST("/me/addresses", controllers.AddAddress)
		users.PUT("/me/addresses/:id", controllers.UpdateAddress)
		users.DELETE("/me/addresses/:id", controllers.DeleteAddress)
	}
}
