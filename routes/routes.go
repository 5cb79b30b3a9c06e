package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shreeflow/shreeflow-backend-go/handlers"
	customMiddleware "github.com/shreeflow/shreeflow-backend-go/middleware"
)

func SetupRoutes(e *echo.Echo) {
	// Public storefront routes
	e.POST("/api/auth/login", handlers.Login)

	e.GET("/api/products", handlers.GetProducts)
	e.GET("/api/products/:id", handlers.GetProduct)

	e.POST("/api/orders", handlers.CreateOrder)
	e.GET("/api/orders/track", handlers.GetOrdersByContact)

	e.POST("/api/payments/orders", handlers.CreateRazorpayOrder)
	e.POST("/api/payments/verify", handlers.VerifyRazorpayPayment)

	e.POST("/api/shipping/calculate", handlers.CalculateShippingCost)

	e.GET("/api/articles", handlers.GetArticles)
	e.GET("/api/articles/:identifier", handlers.GetArticle, customMiddleware.OptionalToken)

	// Admin routes
	admin := e.Group("/api/admin")
	admin.Use(customMiddleware.VerifyToken, customMiddleware.VerifyAdmin)

	admin.POST("/products", handlers.CreateProduct)
	admin.PUT("/products/:id", handlers.UpdateProduct)
	admin.DELETE("/products/:id", handlers.DeleteProduct)

	admin.GET("/orders", handlers.GetAllOrders)
	admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	admin.GET("/orders/analytics", handlers.GetOrderAnalytics)

	admin.GET("/payments/:payment_id", handlers.GetPaymentDetails)

	admin.POST("/articles", handlers.CreateArticle)
	admin.PUT("/articles/:id", handlers.UpdateArticle)
	admin.DELETE("/articles/:id", handlers.DeleteArticle)
	admin.GET("/articles/analytics", handlers.GetArticleAnalytics)

	admin.GET("/analytics/dashboard", handlers.GetDashboardAnalytics)

	// Shipping rate and zone configuration
	admin.GET("/shipping/rates", handlers.GetShippingRates)
	admin.POST("/shipping/rates", handlers.CreateShippingRate)
	admin.PUT("/shipping/rates/:id", handlers.UpdateShippingRate)
	admin.PATCH("/shipping/rates/:id/toggle", handlers.ToggleShippingRateStatus)
	admin.DELETE("/shipping/rates/:id", handlers.DeleteShippingRate)

	admin.GET("/shipping/zones", handlers.GetShippingZones)
	admin.POST("/shipping/zones", handlers.CreateShippingZone)
	admin.PUT("/shipping/zones/:id", handlers.UpdateShippingZone)
	admin.DELETE("/shipping/zones/:id", handlers.DeleteShippingZone)

	// Carrier integration and shipment workflow
	admin.POST("/shiprocket/auth", handlers.AuthenticateShiprocket)
	admin.POST("/shiprocket/integration", handlers.SaveShiprocketIntegration)
	admin.GET("/shiprocket/integration", handlers.GetShiprocketIntegration)
	admin.GET("/shiprocket/status", handlers.CheckShiprocketStatus)
	admin.GET("/shiprocket/rates", handlers.GetLiveRates)
	admin.GET("/shiprocket/pickup-locations", handlers.GetPickupLocations)
	admin.POST("/shiprocket/orders", handlers.CreateShipmentForOrder)
	admin.GET("/shiprocket/track/:awb", handlers.TrackShipmentByAWB)
	admin.POST("/shiprocket/cancel", handlers.CancelShipmentByAWB)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
