package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog post status values.
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
	BlogArchived  = "archived"
)

// BlogStatuses lists every accepted post status.
var BlogStatuses = []string{BlogDraft, BlogPublished, BlogArchived}

// wordsPerMinute drives the read-time estimate.
const wordsPerMinute = 200

// Blog is one post. The slug is derived from the title at create/update
// time and is unique; posts are publicly visible only when published and
// past their publish date.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Excerpt     string             `bson:"excerpt" json:"excerpt"`
	Image       string             `bson:"image" json:"image"`
	Author      string             `bson:"author" json:"author"`
	Tags        []string           `bson:"tags,omitempty" json:"tags"`
	Category    string             `bson:"category" json:"category"`
	Status      string             `bson:"status" json:"status"`
	PublishDate time.Time          `bson:"publish_date" json:"publishDate"`
	ReadTime    int                `bson:"read_time" json:"readTime"`
	Views       int64              `bson:"views" json:"views"`
	Likes       int64              `bson:"likes" json:"likes"`
	Slug        string             `bson:"slug" json:"slug"`
	Featured    bool               `bson:"featured" json:"featured"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Slugify builds a URL slug from a post title with a timestamp suffix so
// re-using a title never collides with an older post.
func Slugify(title string, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}

// EstimateReadTime returns the reading time in whole minutes, minimum one.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
