package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes implementing the same contracts as the Mongo
// implementations, including their validation and absence behavior.

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUsers(_ context.Context) ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	for _, u := range f.users {
		users = append(users, u.Public())
	}
	return users, nil
}

func (f *fakeUserRepo) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return &models.Profile{
				ID:        u.ID,
				Name:      u.Name,
				Username:  u.Username,
				Email:     u.Email,
				Followers: []models.PublicUser{},
				Following: []models.PublicUser{},
			}, nil
		}
	}
	return nil, models.NewNotFoundError("user", id)
}

func (f *fakeUserRepo) SearchByUsername(_ context.Context, fragment string) ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(fragment)) {
			users = append(users, u.Public())
		}
	}
	return users, nil
}

type fakePostRepo struct {
	posts   []*models.Post
	authors map[string]models.PublicUser // author id hex -> public fields
	clock   time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		authors: map[string]models.PublicUser{},
		clock:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakePostRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if post.Content == "" {
		return models.NewValidationError("Content is required")
	}
	if post.AuthorID.IsZero() {
		return models.NewValidationError("Author is required")
	}
	now := f.tick()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostRepo) joined(p *models.Post) models.Post {
	out := *p
	if author, ok := f.authors[p.AuthorID.Hex()]; ok {
		a := author
		out.Author = &a
	}
	return out
}

func (f *fakePostRepo) GetAllPosts(_ context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	for _, p := range f.posts {
		posts = append(posts, f.joined(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.ID.Hex() == id {
			joined := f.joined(p)
			return &joined, nil
		}
	}
	return nil, models.NewNotFoundError("post", id)
}

func (f *fakePostRepo) AddLike(_ context.Context, postID string, like models.Like) error {
	if like.Username == "" {
		return models.NewValidationError("Username is required for liking a post")
	}
	for _, p := range f.posts {
		if p.ID.Hex() == postID {
			p.Likes = append(p.Likes, like)
			return nil
		}
	}
	return models.NewNotFoundError("post", postID)
}

func (f *fakePostRepo) AddComment(_ context.Context, postID string, comment models.Comment) error {
	if comment.Content == "" {
		return models.NewValidationError("Comment content is required")
	}
	if comment.Username == "" {
		return models.NewValidationError("Username is required")
	}
	for _, p := range f.posts {
		if p.ID.Hex() == postID {
			p.Comments = append(p.Comments, comment)
			return nil
		}
	}
	return models.NewNotFoundError("post", postID)
}

type fakeFollowRepo struct {
	edges []*models.Follow
}

func (f *fakeFollowRepo) IsFollowing(_ context.Context, followingID, followerID primitive.ObjectID) (bool, error) {
	for _, e := range f.edges {
		if e.FollowingID == followingID && e.FollowerID == followerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) CreateFollow(_ context.Context, followingID, followerID primitive.ObjectID) (*models.Follow, error) {
	now := time.Now()
	follow := &models.Follow{
		ID:          primitive.NewObjectID(),
		FollowingID: followingID,
		FollowerID:  followerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.edges = append(f.edges, follow)
	return follow, nil
}

func (f *fakeFollowRepo) DeleteFollow(_ context.Context, followingID, followerID primitive.ObjectID) error {
	for i, e := range f.edges {
		if e.FollowingID == followingID && e.FollowerID == followerID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return nil
		}
	}
	return models.NewNotFoundError("follow", followingID.Hex())
}

// failingCache simulates a cache whose invalidation fails after a durable
// store write succeeded.
type failingCache struct{}

func (failingCache) Get(context.Context) ([]byte, error) { return nil, nil }
func (failingCache) Set(context.Context, []byte) error   { return nil }
func (failingCache) Invalidate(context.Context) error    { return context.DeadlineExceeded }
