package handlers

import (
	"context"
	"net/http"
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

// GetArticles lists articles with status/tag/category filters. Public callers
// see published articles unless they ask for a status explicitly.
func GetArticles(c echo.Context) error {
	page, limit, skip := utils.GetPaginationParams(c)

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	} else {
		filter["status"] = models.ArticleStatusPublished
	}
	if tag := c.QueryParam("tag"); tag != "" {
		filter["tags"] = bson.M{"$in": []string{tag}}
	}
	if category := c.QueryParam("category"); category != "" {
		filter["categories"] = bson.M{"$in": []string{category}}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("articles")
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch articles"})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch articles"})
	}
	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch articles"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":       "success",
		"data":       articles,
		"pagination": utils.NewPagination(total, page, limit),
	})
}

// GetArticle fetches an article by slug or id. Drafts and archived articles
// are admin-only; the view counter moves only for published articles.
func GetArticle(c echo.Context) error {
	identifier := c.Param("identifier")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"slug": identifier}
	if hexID.MatchString(identifier) {
		objID, err := primitive.ObjectIDFromHex(identifier)
		if err == nil {
			filter = bson.M{"_id": objID}
		}
	}

	var article models.Article
	if err := database.DB.Collection("articles").FindOne(ctx, filter).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Article not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch article"})
	}

	isAdmin, _ := c.Get("isAdmin").(bool)
	if !article.Viewable(isAdmin) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Article is not published"})
	}

	if article.Status == models.ArticleStatusPublished {
		if _, err := database.DB.Collection("articles").UpdateOne(ctx,
			bson.M{"_id": article.ID},
			bson.M{"$inc": bson.M{"views": 1}},
		); err == nil {
			article.Views++
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"type": "success", "data": article})
}

// CreateArticle adds an article (admin). Slug, excerpt and reading time are
// derived from title and content.
func CreateArticle(c echo.Context) error {
	var article models.Article
	if err := c.Bind(&article); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if len(article.Title) < 5 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title must be at least 5 characters"})
	}
	if len(article.Content) < 50 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Content must be at least 50 characters"})
	}
	if article.FeaturedImage == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Featured image is required"})
	}

	article.ID = primitive.NewObjectID()
	if article.Status == "" {
		article.Status = models.ArticleStatusDraft
	}
	article.Derive()
	if article.Status == models.ArticleStatusPublished {
		now := time.Now()
		article.PublishedAt = &now
	}
	if userID, ok := c.Get("userID").(string); ok {
		if authorID, err := primitive.ObjectIDFromHex(userID); err == nil {
			article.Author = authorID
		}
	}
	article.CreatedAt = time.Now()
	article.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.DB.Collection("articles").InsertOne(ctx, article); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "An article with this title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create article"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"type":    "success",
		"message": "Article created successfully",
		"data":    article,
	})
}

// UpdateArticle patches an article (admin) and recomputes derived fields when
// title or content changed.
func UpdateArticle(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid article ID"})
	}

	var req models.Article
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("articles")
	var existing models.Article
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Article not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update article"})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Title != "" && req.Title != existing.Title {
		if len(req.Title) < 5 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title must be at least 5 characters"})
		}
		update["title"] = req.Title
		update["slug"] = models.Slugify(req.Title)
	}
	if req.Content != "" && req.Content != existing.Content {
		if len(req.Content) < 50 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Content must be at least 50 characters"})
		}
		update["content"] = req.Content
		update["readingTime"] = models.ReadingTime(req.Content)
		if req.Excerpt == "" && existing.Excerpt == "" {
			update["excerpt"] = models.Excerpt(req.Content)
		}
	}
	if req.Excerpt != "" {
		update["excerpt"] = req.Excerpt
	}
	if req.FeaturedImage != "" {
		update["featuredImage"] = req.FeaturedImage
	}
	if req.Tags != nil {
		update["tags"] = req.Tags
	}
	if req.Categories != nil {
		update["categories"] = req.Categories
	}
	if req.SEOTitle != "" {
		update["seoTitle"] = req.SEOTitle
	}
	if req.SEODesc != "" {
		update["seoDescription"] = req.SEODesc
	}
	if req.Status != "" {
		update["status"] = req.Status
		if req.Status == models.ArticleStatusPublished && existing.PublishedAt == nil {
			update["publishedAt"] = time.Now()
		}
	}

	var updated models.Article
	err = collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update article"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type":    "success",
		"message": "Article updated successfully",
		"data":    updated,
	})
}

// DeleteArticle removes an article (admin).
func DeleteArticle(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid article ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("articles").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete article"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Article not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"type": "success", "message": "Article deleted successfully"})
}

// GetArticleAnalytics reports article totals for the admin dashboard.
func GetArticleAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.DB.Collection("articles")

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
	}

	byStatus := map[string]int64{}
	for _, status := range []models.ArticleStatus{models.ArticleStatusDraft, models.ArticleStatusPublished, models.ArticleStatusArchived} {
		count, err := collection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve analytics"})
		}
		byStatus[string(status)] = count
	}

	opts := options.Find().SetSort(bson.D{{Key: "views", Value: -1}}).SetLimit(5)
	var topArticles []models.Article
	if cursor, err := collection.Find(ctx, bson.M{}, opts); err == nil {
		cursor.All(ctx, &topArticles)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": "success",
		"data": map[string]interface{}{
			"totalArticles":    total,
			"articlesByStatus": byStatus,
			"topByViews":       topArticles,
		},
	})
}
