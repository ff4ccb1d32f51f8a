package repositories

import (
	"context"
	"time"

	"github.com/juniel999/angular-nestjs-freedamn-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	DeleteComment(ctx context.Context, id string) error
	IncrementReplyCount(ctx context.Context, id string, delta int64) error
	AddLike(ctx context.Context, id string, userID uint) (bool, error)
	RemoveLike(ctx context.Context, id string, userID uint) (bool, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func commentObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.NewNotFoundError("comment", id)
	}
	return objID, nil
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	if comment.Likes == nil {
		comment.Likes = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := commentObjectID(id)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments on a post, oldest first.
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, models.NewNotFoundError("post", postID)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateContent replaces a comment's content text.
func (r *MongoCommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	objID, err := commentObjectID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"content": content, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}

// DeleteComment deletes a comment by ID. Replies pointing at it are left in
// place; threading treats a reply with a missing parent as top-level.
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	objID, err := commentObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}

// IncrementReplyCount bumps the denormalized reply counter atomically.
func (r *MongoCommentRepository) IncrementReplyCount(ctx context.Context, id string, delta int64) error {
	objID, err := commentObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"reply_count": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}

// AddLike adds userID to the comment's like set. The returned bool reports
// whether the set actually changed, so callers can reject repeat likes.
func (r *MongoCommentRepository) AddLike(ctx context.Context, id string, userID uint) (bool, error) {
	objID, err := commentObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, models.NewNotFoundError("comment", id)
	}
	return res.ModifiedCount > 0, nil
}

// RemoveLike removes userID from the comment's like set. The returned bool
// reports whether the member was actually present.
func (r *MongoCommentRepository) RemoveLike(ctx context.Context, id string, userID uint) (bool, error) {
	objID, err := commentObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, models.NewNotFoundError("comment", id)
	}
	return res.ModifiedCount > 0, nil
}
