package main

import (
	"log"
	"os"

	"shopora-backend/controllers"
	db "shopora-backend/database"
	_ "shopora-backend/docs"
	"shopora-backend/jobs"
	"shopora-backend/routes"
	"shopora-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Shopora API
// @version 1.0
// @description REST API for the Shopora multi-role e-commerce platform.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set in .env")
	}

	storage.InitCloudinary()
	controllers.InitStripe()

	db.InitDB()
	defer db.DisconnectDB()

	scheduler := jobs.Start()
	defer scheduler.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
