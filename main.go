package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/shreeflow/shreeflow-backend-go/config"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/handlers"
	customMiddleware "github.com/shreeflow/shreeflow-backend-go/middleware"
	"github.com/shreeflow/shreeflow-backend-go/payment"
	"github.com/shreeflow/shreeflow-backend-go/routes"
	"github.com/shreeflow/shreeflow-backend-go/shiprocket"
	"github.com/shreeflow/shreeflow-backend-go/utils"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	utils.SetJWTSecret(config.MustGetEnv("JWT_SECRET"))

	e := echo.New()
	e.HTTPErrorHandler = customMiddleware.HTTPErrorHandler

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(customMiddleware.Metrics)

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Outbound clients
	shiprocketClient := shiprocket.NewClient(
		config.GetEnv("SHIPROCKET_BASE_URL", shiprocket.DefaultBaseURL),
		shiprocket.NewMongoTokenStore(database.DB),
	)
	paymentClient := payment.NewClient(
		config.MustGetEnv("RAZORPAY_KEY_ID"),
		config.MustGetEnv("RAZORPAY_KEY_SECRET"),
	)
	handlers.Init(shiprocketClient, paymentClient)

	// Setup routes
	routes.SetupRoutes(e)

	// Start the server
	port := config.GetEnv("PORT", "3000")
	log.Printf("Server starting on port %s...", port)
	e.Logger.Fatal(e.Start(":" + port))
}
