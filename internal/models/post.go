package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a post document. Comments and likes are embedded append-only
// arrays; the author is joined in at read time, not embedded.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  primitive.ObjectID `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	Tags      []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	ImgURL    string             `json:"img_url,omitempty" bson:"img_url,omitempty"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	Likes     []Like             `json:"likes" bson:"likes"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	Author    *PublicUser        `json:"author,omitempty" bson:"author,omitempty"`
}

// Comment records the commenter's username denormalized, not a reference.
type Comment struct {
	Content   string    `json:"content" bson:"content"`
	Username  string    `json:"username" bson:"username"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Like struct {
	Username  string    `json:"username" bson:"username"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
	ImgURL  string   `json:"img_url,omitempty" validate:"omitempty,url"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}
