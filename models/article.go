package models

import (
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Content       string             `bson:"content" json:"content"`
	Excerpt       string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	FeaturedImage string             `bson:"featuredImage" json:"featuredImage"`
	Author        primitive.ObjectID `bson:"author,omitempty" json:"author,omitempty"`
	Status        ArticleStatus      `bson:"status" json:"status"`
	Tags          []string           `bson:"tags" json:"tags"`
	Categories    []string           `bson:"categories" json:"categories"`
	Views         int64              `bson:"views" json:"views"`
	Likes         int64              `bson:"likes" json:"likes"`
	PublishedAt   *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	SEOTitle      string             `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SEODesc       string             `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	ReadingTime   int                `bson:"readingTime" json:"readingTime"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9 -]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
	htmlTags     = regexp.MustCompile(`<[^>]*>`)
)

// Slugify turns a title into its URL slug: lowercased, punctuation stripped,
// spaces collapsed into single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Excerpt derives a short plain-text preview from article content when the
// author did not provide one.
func Excerpt(content string) string {
	plain := htmlTags.ReplaceAllString(content, "")
	runes := []rune(plain)
	if len(runes) <= 150 {
		return plain
	}
	return string(runes[:150]) + "..."
}

// ReadingTime estimates minutes to read at 200 words per minute, minimum 1.
func ReadingTime(content string) int {
	plain := htmlTags.ReplaceAllString(content, "")
	words := len(strings.Fields(plain))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / 200.0))
}

// Viewable reports whether a caller may read the article. Drafts and archived
// articles are admin-only, even for callers who know the slug.
func (a *Article) Viewable(isAdmin bool) bool {
	return a.Status == ArticleStatusPublished || isAdmin
}

// Derive fills the computed fields from title and content. Called on create
// and whenever title or content changes.
func (a *Article) Derive() {
	a.Slug = Slugify(a.Title)
	if a.Excerpt == "" && a.Content != "" {
		a.Excerpt = Excerpt(a.Content)
	}
	if a.Content != "" {
		a.ReadingTime = ReadingTime(a.Content)
	}
}
