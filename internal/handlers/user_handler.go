package handlers

import (
	"net/http"

	"github.com/arkya-dev/feedline/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.GET("/users", h.GetUsers)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetProfile)
}

// GetOwnProfile returns the caller's profile with follower/following lists.
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.userRepository.GetProfile(c.Request().Context(), user.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// GetProfile returns any user's profile with follower/following lists.
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.userRepository.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// GetUsers lists all users, public fields only.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}

// SearchUsers matches usernames by case-insensitive substring.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("username")

	users, err := h.userRepository.SearchByUsername(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}
