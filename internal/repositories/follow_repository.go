package repositories

import (
	"context"
	"time"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	IsFollowing(ctx context.Context, followingID, followerID primitive.ObjectID) (bool, error)
	CreateFollow(ctx context.Context, followingID, followerID primitive.ObjectID) (*models.Follow, error)
	DeleteFollow(ctx context.Context, followingID, followerID primitive.ObjectID) error
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// IsFollowing reports whether the edge (followingID, followerID) exists.
func (r *MongoFollowRepository) IsFollowing(ctx context.Context, followingID, followerID primitive.ObjectID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{
		"following_id": followingID,
		"follower_id":  followerID,
	}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateFollow inserts a follow edge with current timestamps.
func (r *MongoFollowRepository) CreateFollow(ctx context.Context, followingID, followerID primitive.ObjectID) (*models.Follow, error) {
	now := time.Now()
	follow := &models.Follow{
		ID:          primitive.NewObjectID(),
		FollowingID: followingID,
		FollowerID:  followerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// DeleteFollow removes the edge (followingID, followerID).
func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, followingID, followerID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{
		"following_id": followingID,
		"follower_id":  followerID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("follow", followingID.Hex())
	}
	return nil
}
