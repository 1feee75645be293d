package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"github.com/arkya-dev/feedline/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler handles registration and login
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
	jwtExpiry      time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string, expiryHours int) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
		jwtExpiry:      time.Duration(expiryHours) * time.Hour,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register handles user registration. Each rejection carries its own stable
// message; the uniqueness checks are checked, not database-enforced, so a
// race window between check and insert exists and is accepted.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := validateRegistration(req); err != nil {
		return httpError(err)
	}

	ctx := c.Request().Context()

	existing, err := h.userRepository.FindByUsername(ctx, req.Username)
	if err != nil {
		return httpError(err)
	}
	if existing != nil {
		return httpError(models.NewValidationError("Username must be unique"))
	}

	existing, err = h.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return httpError(err)
	}
	if existing != nil {
		return httpError(models.NewValidationError("Email must be unique"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user.Public())
}

func validateRegistration(req models.RegisterRequest) error {
	if req.Name == "" {
		return models.NewValidationError("Name is required")
	}
	if req.Username == "" {
		return models.NewValidationError("Username is required")
	}
	if req.Email == "" {
		return models.NewValidationError("Email is required")
	}
	if req.Password == "" {
		return models.NewValidationError("Password is required")
	}
	if len(req.Password) < 5 {
		return models.NewValidationError("Password must be at least 5 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return models.NewValidationError("Email format is invalid")
	}
	return nil
}

// Login authenticates a user and issues a signed token. Unknown username
// and wrong password produce the identical generic failure.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.FindByUsername(c.Request().Context(), req.Username)
	if err != nil {
		return httpError(err)
	}
	if user == nil {
		return httpError(models.ErrInvalidCredential)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return httpError(models.ErrInvalidCredential)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		Message:     "Login Success",
		UserID:      user.ID.Hex(),
	})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}
