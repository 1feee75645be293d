package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a directed edge: FollowerID follows FollowingID. At most one
// edge exists per ordered pair; existence is binary state, not a counter.
type Follow struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FollowingID primitive.ObjectID `json:"following_id" bson:"following_id"`
	FollowerID  primitive.ObjectID `json:"follower_id" bson:"follower_id"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
