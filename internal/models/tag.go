package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is an entry in the shared tag vocabulary. Name is the canonical
// (normalized) form and is unique. UsageCount is a lifetime association
// total: it is incremented once per association event and never decremented.
type Tag struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	UsageCount int64              `json:"usage_count" bson:"usage_count"`
	Featured   bool               `json:"featured" bson:"featured"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// NormalizeTag returns the canonical form of a tag name. Two names that
// normalize equal are the same tag.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RenameTagRequest defines the request body for renaming a tag
type RenameTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
}
