package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post, optionally threaded under a
// parent comment. ReplyCount is a denormalized counter maintained
// alongside reply creation and deletion, never recomputed by scanning.
type Comment struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	PostID     primitive.ObjectID  `json:"post_id" bson:"post_id"`
	ParentID   *primitive.ObjectID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	AuthorID   uint                `json:"author_id" bson:"author_id"`
	Content    string              `json:"content" bson:"content"`
	Likes      []uint              `json:"likes" bson:"likes"`
	ReplyCount int64               `json:"reply_count" bson:"reply_count"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
