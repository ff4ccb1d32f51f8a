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

// PostSort selects the ordering of list queries.
type PostSort string

const (
	SortNewest  PostSort = "newest"
	SortOldest  PostSort = "oldest"
	SortPopular PostSort = "popular"
)

// PostQuery describes a published-post selection. Zero values mean "no
// constraint": an empty TagsAny matches every post, Limit 0 disables paging.
type PostQuery struct {
	TagsAny   []string // posts whose tag list intersects the set
	Tag       string   // posts whose tag list contains exactly this name
	AuthorIDs []uint
	Sort      PostSort
	Skip      int64
	Limit     int64
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, patch bson.M) error
	DeletePost(ctx context.Context, id string) error
	FindPublished(ctx context.Context, q PostQuery) ([]models.Post, error)
	CountPublished(ctx context.Context, q PostQuery) (int64, error)
	SamplePublished(ctx context.Context, size, skip int64) ([]models.Post, error)
	IncrementViews(ctx context.Context, id string) error
	AddLike(ctx context.Context, id string, userID uint) (*models.Post, error)
	RemoveLike(ctx context.Context, id string, userID uint) (*models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func postObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.NewNotFoundError("post", id)
	}
	return objID, nil
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := postObjectID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthorID retrieves every post (published or not) by one author.
func (r *MongoPostRepository) GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost applies a $set patch to an existing post.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, patch bson.M) error {
	objID, err := postObjectID(id)
	if err != nil {
		return err
	}

	patch["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := postObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}

func publishedFilter(q PostQuery) bson.M {
	filter := bson.M{"published": true}
	if len(q.TagsAny) > 0 {
		filter["tags"] = bson.M{"$in": q.TagsAny}
	}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}
	if q.AuthorIDs != nil {
		filter["author_id"] = bson.M{"$in": q.AuthorIDs}
	}
	return filter
}

func sortSpec(s PostSort) bson.D {
	switch s {
	case SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	case SortPopular:
		return bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: -1}}
	default:
		// newest-first; _id breaks ties so pagination stays deterministic
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	}
}

// FindPublished retrieves published posts matching the query.
func (r *MongoPostRepository) FindPublished(ctx context.Context, q PostQuery) ([]models.Post, error) {
	findOptions := options.Find().SetSort(sortSpec(q.Sort))
	if q.Skip > 0 {
		findOptions.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, publishedFilter(q), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPublished counts published posts matching the query, ignoring paging.
func (r *MongoPostRepository) CountPublished(ctx context.Context, q PostQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, publishedFilter(q))
}

// SamplePublished draws a fresh uniform random sample of published posts.
// Each call is an independent draw; there is no stable cursor.
func (r *MongoPostRepository) SamplePublished(ctx context.Context, size, skip int64) ([]models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"published": true}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementViews bumps the view counter atomically on the store side.
func (r *MongoPostRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := postObjectID(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// AddLike adds userID to the post's like set via $addToSet and returns the
// post as it stands after the call. Adding an existing member is a no-op.
func (r *MongoPostRepository) AddLike(ctx context.Context, id string, userID uint) (*models.Post, error) {
	return r.updateLikes(ctx, id, bson.M{"$addToSet": bson.M{"likes": userID}})
}

// RemoveLike removes userID from the post's like set via $pull. Removing an
// absent member is a no-op.
func (r *MongoPostRepository) RemoveLike(ctx context.Context, id string, userID uint) (*models.Post, error) {
	return r.updateLikes(ctx, id, bson.M{"$pull": bson.M{"likes": userID}})
}

func (r *MongoPostRepository) updateLikes(ctx context.Context, id string, update bson.M) (*models.Post, error) {
	objID, err := postObjectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, err
	}
	return &post, nil
}
