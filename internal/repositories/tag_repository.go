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

// TagRepository defines the interface for tag data operations. All names
// passed in are expected to be canonical already (models.NormalizeTag).
type TagRepository interface {
	EnsureIndexes(ctx context.Context) error
	UpsertIncrement(ctx context.Context, name string) (*models.Tag, error)
	GetTagByID(ctx context.Context, id string) (*models.Tag, error)
	GetTagByName(ctx context.Context, name string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	RenameTag(ctx context.Context, id, name string) (*models.Tag, error)
	SetFeatured(ctx context.Context, id string, featured bool) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// MongoTagRepository implements TagRepository for MongoDB
type MongoTagRepository struct {
	collection *mongo.Collection
}

// NewMongoTagRepository creates a new MongoTagRepository
func NewMongoTagRepository(db *mongo.Database) *MongoTagRepository {
	return &MongoTagRepository{collection: db.Collection("tags")}
}

func tagObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.NewNotFoundError("tag", id)
	}
	return objID, nil
}

// EnsureIndexes creates the unique index that backs canonical-name
// uniqueness. Rename conflicts surface as duplicate key errors.
func (r *MongoTagRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UpsertIncrement looks up a tag by canonical name and atomically bumps its
// usage counter, creating it with a counter of 1 when absent. The
// lookup-and-increment is a single store-side operation, so concurrent
// callers cannot lose updates or create duplicates.
func (r *MongoTagRepository) UpsertIncrement(ctx context.Context, name string) (*models.Tag, error) {
	now := time.Now()
	update := bson.M{
		"$inc": bson.M{"usage_count": 1},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"name":       name,
			"featured":   false,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tag models.Tag
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByID retrieves a tag by ID from MongoDB
func (r *MongoTagRepository) GetTagByID(ctx context.Context, id string) (*models.Tag, error) {
	objID, err := tagObjectID(id)
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tag)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("tag", id)
		}
		return nil, err
	}
	return &tag, nil
}

// GetTagByName retrieves a tag by canonical name from MongoDB
func (r *MongoTagRepository) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&tag)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("tag", name)
		}
		return nil, err
	}
	return &tag, nil
}

// ListTags retrieves all tags sorted by usage count descending.
func (r *MongoTagRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "usage_count", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err = cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// RenameTag sets a tag's canonical name. A collision with another tag's
// name hits the unique index and is reported as Conflict, leaving the tag
// unchanged.
func (r *MongoTagRepository) RenameTag(ctx context.Context, id, name string) (*models.Tag, error) {
	objID, err := tagObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"name": name, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tag models.Tag
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&tag)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("tag", id)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewConflictError("tag name already in use: " + name)
		}
		return nil, err
	}
	return &tag, nil
}

// SetFeatured toggles the featured flag on a tag.
func (r *MongoTagRepository) SetFeatured(ctx context.Context, id string, featured bool) (*models.Tag, error) {
	objID, err := tagObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"featured": featured, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var tag models.Tag
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&tag)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("tag", id)
		}
		return nil, err
	}
	return &tag, nil
}

// DeleteTag deletes a tag by ID from MongoDB
func (r *MongoTagRepository) DeleteTag(ctx context.Context, id string) error {
	objID, err := tagObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("tag", id)
	}
	return nil
}
