package repositories

import (
	"context"
	"time"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	AddLike(ctx context.Context, postID string, like models.Like) error
	AddComment(ctx context.Context, postID string, comment models.Comment) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// authorLookup joins the post's author from the users collection and
// collapses the one-to-one relationship, with the password projected out.
func authorLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author"}}},
		{{Key: "$project", Value: bson.M{"author.password": 0}}},
	}
}

// CreatePost creates a new post with empty comment and like lists. Creation
// and update timestamps are set to the same instant.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.Content == "" {
		return models.NewValidationError("Content is required")
	}
	if post.AuthorID.IsZero() {
		return models.NewValidationError("Author is required")
	}

	now := time.Now()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}

	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetAllPosts retrieves all posts joined with their author's public fields,
// ordered by creation time descending. The ordering is a contract, not a
// side effect of insertion order.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	pipeline := mongo.Pipeline{}
	for _, stage := range authorLookup() {
		pipeline = append(pipeline, stage)
	}
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}})

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

// GetPostByID retrieves a single post with its author joined in.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("post", id)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": objID}}},
	}
	for _, stage := range authorLookup() {
		pipeline = append(pipeline, stage)
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, models.NewNotFoundError("post", id)
	}

	var post models.Post
	if err := cursor.Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// AddLike appends a like to the post's like list. Duplicate likes from the
// same user are permitted; the list is an event log.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID string, like models.Like) error {
	if like.Username == "" {
		return models.NewValidationError("Username is required for liking a post")
	}

	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return models.NewNotFoundError("post", postID)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"likes": like}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("post", postID)
	}
	return nil
}

// AddComment appends a comment to the post's comment list.
func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	if comment.Content == "" {
		return models.NewValidationError("Comment content is required")
	}
	if comment.Username == "" {
		return models.NewValidationError("Username is required")
	}

	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return models.NewNotFoundError("post", postID)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("post", postID)
	}
	return nil
}
