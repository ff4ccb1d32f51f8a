package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post stored in MongoDB
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID    uint               `json:"author_id" bson:"author_id"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Content     bson.M             `json:"content,omitempty" bson:"content,omitempty"` // opaque editor document
	ContentHTML string             `json:"content_html" bson:"content_html"`
	Tags        []string           `json:"tags" bson:"tags"`
	Published   bool               `json:"published" bson:"published"`
	Views       int64              `json:"views" bson:"views"`
	ImageURLs   []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	Likes       []uint             `json:"likes" bson:"likes"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug from a post title: lowercase, runs of
// non-alphanumeric characters collapsed to a single dash, surrounding
// dashes stripped. Deterministic and idempotent.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PostView is a post with its author projected for feed responses.
type PostView struct {
	Post
	Author UserCompact `json:"author"`
}

// FeedPage is the wire shape shared by every feed variant.
type FeedPage struct {
	Posts []PostView `json:"posts"`
	Total int64      `json:"total"`
	Page  int64      `json:"page"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Content     bson.M   `json:"content,omitempty"`
	ContentHTML string   `json:"content_html" validate:"required,min=1"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
	Published   *bool    `json:"published,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content     bson.M   `json:"content,omitempty"`
	ContentHTML string   `json:"content_html,omitempty" validate:"omitempty,min=1"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
	Published   *bool    `json:"published,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
