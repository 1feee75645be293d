package repositories

import (
	"context"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.PublicUser, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	SearchByUsername(ctx context.Context, fragment string) ([]models.PublicUser, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user document.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByUsername retrieves a user by username. Returns (nil, nil) when no
// such user exists; the caller owns the absence decision.
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users, public fields only.
func (r *MongoUserRepository) GetUsers(ctx context.Context) ([]models.PublicUser, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.PublicUser{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetProfile retrieves a user together with follower and following lists,
// each resolved through two dependent lookups (edge -> user). Passwords are
// projected out of the root document and both lists.
func (r *MongoUserRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("user", id)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": objID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "follows",
			"localField":   "_id",
			"foreignField": "following_id",
			"as":           "followers",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "followers.follower_id",
			"foreignField": "_id",
			"as":           "follower_details",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "follows",
			"localField":   "_id",
			"foreignField": "follower_id",
			"as":           "followings",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "followings.following_id",
			"foreignField": "_id",
			"as":           "following_details",
		}}},
		{{Key: "$project", Value: bson.M{
			"password":                   0,
			"follower_details.password":  0,
			"following_details.password": 0,
		}}},
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
		return nil, models.NewNotFoundError("user", id)
	}

	var profile models.Profile
	if err := cursor.Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Followers == nil {
		profile.Followers = []models.PublicUser{}
	}
	if profile.Following == nil {
		profile.Following = []models.PublicUser{}
	}
	return &profile, nil
}

// SearchByUsername performs a case-insensitive substring match on username.
func (r *MongoUserRepository) SearchByUsername(ctx context.Context, fragment string) ([]models.PublicUser, error) {
	filter := bson.M{"username": bson.M{"$regex": fragment, "$options": "i"}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.PublicUser{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
