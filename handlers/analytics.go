package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetDashboardAnalytics aggregates dashboard numbers across collections for a
// date range, defaulting to the last 30 days.
func GetDashboardAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	start := time.Now().AddDate(0, 0, -30)
	end := time.Now()
	if s := c.QueryParam("startDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			start = t
		}
	}
	if e := c.QueryParam("endDate"); e != "" {
		if t, err := time.Parse("2006-01-02", e); err == nil {
			end = t.Add(24 * time.Hour)
		}
	}
	dateFilter := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}

	orders := database.DB.Collection("orders")
	products := database.DB.Collection("products")
	users := database.DB.Collection("users")
	articles := database.DB.Collection("articles")

	totalProducts, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}
	totalOrders, err := orders.CountDocuments(ctx, dateFilter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}
	totalUsers, err := users.CountDocuments(ctx, bson.M{"isAdmin": false})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}
	totalArticles, err := articles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}
	inactiveProducts, err := products.CountDocuments(ctx, bson.M{"active": false})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}

	var totalRevenue float64
	revCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"createdAt": bson.M{"$gte": start, "$lte": end},
			"status":    bson.M{"$in": []string{"paid", "delivered"}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err == nil {
		var results []bson.M
		if err := revCursor.All(ctx, &results); err == nil && len(results) > 0 {
			if v, ok := results[0]["total"].(float64); ok {
				totalRevenue = v
			}
		}
	}

	statusCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: dateFilter}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	var ordersByStatus []bson.M
	if err == nil {
		statusCursor.All(ctx, &ordersByStatus)
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	dailyCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    bson.M{"$in": []string{"paid", "delivered"}},
			"createdAt": bson.M{"$gte": sevenDaysAgo},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"revenue": bson.M{"$sum": "$amount"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	var dailyRevenue []bson.M
	if err == nil {
		dailyCursor.All(ctx, &dailyRevenue)
	}

	topCursor, err := orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": []string{"paid", "delivered"}}}}},
		{{Key: "$unwind", Value: "$products"}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$products.productId",
			"totalSold": bson.M{"$sum": "$products.quantity"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalSold", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "productDetails",
		}}},
		{{Key: "$unwind", Value: "$productDetails"}},
		{{Key: "$project", Value: bson.M{
			"title":     "$productDetails.title",
			"image":     "$productDetails.image",
			"price":     "$productDetails.price",
			"totalSold": 1,
			"revenue":   bson.M{"$multiply": []interface{}{"$totalSold", "$productDetails.price"}},
		}}},
	})
	var topProducts []bson.M
	if err == nil {
		topCursor.All(ctx, &topProducts)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": "success",
		"data": map[string]interface{}{
			"totalProducts":    totalProducts,
			"totalOrders":      totalOrders,
			"totalUsers":       totalUsers,
			"totalArticles":    totalArticles,
			"inactiveProducts": inactiveProducts,
			"totalRevenue":     totalRevenue,
			"ordersByStatus":   ordersByStatus,
			"dailyRevenue":     dailyRevenue,
			"topProducts":      topProducts,
		},
	})
}
