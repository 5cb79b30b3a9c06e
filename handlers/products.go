package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shreeflow/shreeflow-backend-go/database"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"github.com/shreeflow/shreeflow-backend-go/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var hexID = regexp.MustCompile(`^[a-f0-9]{24}$`)

// GetProducts lists the catalog. ?new=true returns the latest 5; ?category=X
// filters by category; otherwise the listing is paginated.
func GetProducts(c echo.Context) error {
	collection := database.DB.Collection("products")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.QueryParam("new") != "" {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(5)
		cursor, err := collection.Find(ctx, bson.M{}, opts)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
		}
		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "products": products})
	}

	page, limit, skip := utils.GetPaginationParams(c)

	filter := bson.M{}
	if category := c.QueryParam("category"); category != "" {
		filter["categories"] = bson.M{"$in": []string{category}}
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to count products"})
	}

	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":       "success",
		"data":       products,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

// GetProduct fetches a product by object id or title slug.
func GetProduct(c echo.Context) error {
	identifier := c.Param("id")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	var err error
	if hexID.MatchString(identifier) {
		objID, idErr := primitive.ObjectIDFromHex(identifier)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
		}
		err = database.DB.Collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	} else {
		// Slug lookup: slugs are hyphenated lowercase titles.
		titleFromSlug := strings.ReplaceAll(identifier, "-", " ")
		err = database.DB.Collection("products").FindOne(ctx, bson.M{
			"title": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(titleFromSlug) + "$", Options: "i"},
		}).Decode(&product)
	}

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Product doesn't exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": product})
}

// CreateProduct adds a catalog entry (admin).
func CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if product.Title == "" || product.Description == "" || product.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title, description and a non-negative price are required"})
	}

	if product.Weight == 0 {
		product.Weight = models.DefaultWeight
	}
	if product.Length == 0 {
		product.Length = models.DefaultLength
	}
	if product.Breadth == 0 {
		product.Breadth = models.DefaultBreadth
	}
	if product.Height == 0 {
		product.Height = models.DefaultHeight
	}
	product.Active = true
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("products").InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "A product with this title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create product"})
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"type":    "success",
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct patches a catalog entry (admin).
func UpdateProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var updates bson.M
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	delete(updates, "_id")
	delete(updates, "createdAt")
	updates["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.Product
	err = database.DB.Collection("products").FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Product doesn't exist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update product"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Product updated successfully",
		"data":    updated,
	})
}

// DeleteProduct removes a catalog entry (admin).
func DeleteProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("products").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete product"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product doesn't exist"})
	}

	return c.JSON(http.StatusOK, map[string]string{"type": "success", "message": "Product deleted successfully"})
}
