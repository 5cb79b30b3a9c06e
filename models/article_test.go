package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"How Water Level Controllers Work", "how-water-level-controllers-work"},
		{"Top 5 Tips & Tricks!", "top-5-tips-tricks"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Already-hyphenated --- title", "already-hyphenated-title"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestExcerptStripsTagsAndTruncates(t *testing.T) {
	short := "<p>Short <b>intro</b> text.</p>"
	assert.Equal(t, "Short intro text.", Excerpt(short))

	long := "<p>" + strings.Repeat("a", 300) + "</p>"
	got := Excerpt(long)
	assert.Len(t, []rune(got), 153)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("a few words only"))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 3, ReadingTime(strings.Repeat("word ", 450)))
}

func TestArticleDerive(t *testing.T) {
	a := &Article{
		Title:   "Installing Your Controller",
		Content: "<p>" + strings.Repeat("step ", 250) + "</p>",
	}
	a.Derive()

	assert.Equal(t, "installing-your-controller", a.Slug)
	assert.NotEmpty(t, a.Excerpt)
	assert.Equal(t, 2, a.ReadingTime)
}

func TestArticleViewable(t *testing.T) {
	tests := []struct {
		status  ArticleStatus
		isAdmin bool
		want    bool
	}{
		{ArticleStatusPublished, false, true},
		{ArticleStatusPublished, true, true},
		{ArticleStatusDraft, false, false},
		{ArticleStatusDraft, true, true},
		{ArticleStatusArchived, false, false},
		{ArticleStatusArchived, true, true},
	}
	for _, tt := range tests {
		a := &Article{Status: tt.status}
		assert.Equal(t, tt.want, a.Viewable(tt.isAdmin), "status %s admin %v", tt.status, tt.isAdmin)
	}
}

func TestArticleDeriveKeepsAuthorExcerpt(t *testing.T) {
	a := &Article{Title: "T", Content: "body text here", Excerpt: "hand-written summary"}
	a.Derive()
	assert.Equal(t, "hand-written summary", a.Excerpt)
}
