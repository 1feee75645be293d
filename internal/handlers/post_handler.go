package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/arkya-dev/feedline/backend/internal/cache"
	"github.com/arkya-dev/feedline/backend/internal/middleware"
	"github.com/arkya-dev/feedline/backend/internal/models"
	"github.com/arkya-dev/feedline/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles the feed and every mutation that changes it. All
// three mutations (post, like, comment) share the same invalidation path.
type PostHandler struct {
	postRepository repositories.PostRepository
	feedCache      cache.FeedCache
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, feedCache cache.FeedCache) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		feedCache:      feedCache,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts/:id/like", h.LikePost)
	g.POST("/posts/:id/comments", h.CommentPost)
}

// GetFeed serves the feed read-through: a cached snapshot is returned
// verbatim; on a miss the feed is computed, stored with no expiry, and
// returned. A failed fill is tolerated, the next read recomputes.
func (h *PostHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()

	cached, err := h.feedCache.Get(ctx)
	if err != nil {
		middleware.Logger.Warn("feed cache read failed, falling back to store", "error", err.Error())
	}
	if cached != nil {
		return c.JSONBlob(http.StatusOK, cached)
	}

	posts, err := h.postRepository.GetAllPosts(ctx)
	if err != nil {
		return httpError(err)
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.feedCache.Set(ctx, payload); err != nil {
		middleware.Logger.Warn("feed cache fill failed", "error", err.Error())
	}

	return c.JSONBlob(http.StatusOK, payload)
}

// GetPost retrieves a single post, always live. The detail view must show
// a like or comment immediately after the action that navigated to it, so
// this read bypasses the cache.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post and invalidates the feed.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	authorID, err := primitive.ObjectIDFromHex(user.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  req.Content,
		Tags:     req.Tags,
		ImgURL:   req.ImgURL,
	}

	ctx := c.Request().Context()
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return httpError(err)
	}

	h.invalidateFeed(c)

	created, err := h.postRepository.GetPostByID(ctx, post.ID.Hex())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, created)
}

// LikePost appends a like to the post and invalidates the feed. The same
// user may like a post more than once; the like list is an event log.
func (h *PostHandler) LikePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	now := time.Now()
	like := models.Like{
		Username:  user.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.postRepository.AddLike(c.Request().Context(), c.Param("id"), like); err != nil {
		return httpError(err)
	}

	h.invalidateFeed(c)

	return c.JSON(http.StatusOK, like)
}

// CommentPost appends a comment to the post and invalidates the feed.
func (h *PostHandler) CommentPost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	comment := models.Comment{
		Content:   req.Content,
		Username:  user.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.postRepository.AddComment(c.Request().Context(), c.Param("id"), comment); err != nil {
		return httpError(err)
	}

	h.invalidateFeed(c)

	return c.JSON(http.StatusCreated, comment)
}

// invalidateFeed drops the cached feed before the mutation's response goes
// out. A failure here means a stale feed can be served, so it is logged as
// an error for operators, but the durable store write already succeeded and
// the mutation is still reported as successful.
func (h *PostHandler) invalidateFeed(c echo.Context) {
	if err := h.feedCache.Invalidate(c.Request().Context()); err != nil {
		middleware.Logger.Error("feed cache invalidation failed, stale feed may be served",
			"path", c.Request().URL.Path,
			"error", err.Error(),
		)
	}
}
