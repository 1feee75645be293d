package handlers

import (
	"net/http"

	"github.com/arkya-dev/feedline/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowHandler handles the follow toggle
type FollowHandler struct {
	followRepository repositories.FollowRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository) *FollowHandler {
	return &FollowHandler{followRepository: followRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the follow edge from the caller to the target user:
// one button, two outcomes. The check-then-act pair is not wrapped in a
// transaction; concurrent toggles by the same caller can race, and the
// losing delete surfaces as not found. Self-follow is not rejected.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	followingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	followerID, err := primitive.ObjectIDFromHex(user.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	ctx := c.Request().Context()

	isFollowing, err := h.followRepository.IsFollowing(ctx, followingID, followerID)
	if err != nil {
		return httpError(err)
	}

	if isFollowing {
		if err := h.followRepository.DeleteFollow(ctx, followingID, followerID); err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, echo.Map{"following": false})
	}

	follow, err := h.followRepository.CreateFollow(ctx, followingID, followerID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": true, "follow": follow})
}
