package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

func setupAuthApp(userRepo *fakeUserRepo) *echo.Echo {
	e := echo.New()
	h := NewAuthHandler(userRepo, testJWTSecret, 72)
	h.RegisterAuthRoutes(e.Group("/api/v1/auth"))
	return e
}

func postJSON(e *echo.Echo, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	userRepo := &fakeUserRepo{}
	e := setupAuthApp(userRepo)

	// Seed a user for the duplicate cases
	rec := postJSON(e, "/api/v1/auth/register", map[string]string{
		"name": "Alice", "username": "alice", "email": "alice@mail.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name           string
		requestBody    map[string]string
		expectedStatus int
		expectedError  string
	}{
		{
			name: "valid registration",
			requestBody: map[string]string{
				"name": "Bob", "username": "bob", "email": "bob@mail.com", "password": "secret",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing username",
			requestBody: map[string]string{
				"name": "Carol", "email": "carol@mail.com", "password": "secret",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username is required",
		},
		{
			name: "missing email",
			requestBody: map[string]string{
				"name": "Carol", "username": "carol", "password": "secret",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Email is required",
		},
		{
			name: "password too short",
			requestBody: map[string]string{
				"name": "Carol", "username": "carol", "email": "carol@mail.com", "password": "abcd",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password must be at least 5 characters",
		},
		{
			name: "malformed email",
			requestBody: map[string]string{
				"name": "Carol", "username": "carol", "email": "not-an-email", "password": "secret",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Email format is invalid",
		},
		{
			name: "duplicate username",
			requestBody: map[string]string{
				"name": "Alice Two", "username": "alice", "email": "alice2@mail.com", "password": "secret",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Username must be unique",
		},
		{
			name: "duplicate email",
			requestBody: map[string]string{
				"name": "Alice Two", "username": "alice2", "email": "alice@mail.com", "password": "secret",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Email must be unique",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(e, "/api/v1/auth/register", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	userRepo := &fakeUserRepo{}
	e := setupAuthApp(userRepo)

	rec := postJSON(e, "/api/v1/auth/register", map[string]string{
		"name": "Alice", "username": "alice", "email": "alice@mail.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret")

	// The stored credential is a one-way transform, not the raw input
	stored := userRepo.users[0]
	assert.NotEqual(t, "secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
}

func TestLogin(t *testing.T) {
	userRepo := &fakeUserRepo{}
	e := setupAuthApp(userRepo)

	rec := postJSON(e, "/api/v1/auth/register", map[string]string{
		"name": "Alice", "username": "alice", "email": "alice@mail.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("success returns token and user id", func(t *testing.T) {
		rec := postJSON(e, "/api/v1/auth/login", map[string]string{
			"username": "alice", "password": "secret",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Login Success", resp.Message)
		assert.Equal(t, userRepo.users[0].ID.Hex(), resp.UserID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		wrongPass := postJSON(e, "/api/v1/auth/login", map[string]string{
			"username": "alice", "password": "wrong",
		})
		unknownUser := postJSON(e, "/api/v1/auth/login", map[string]string{
			"username": "nobody", "password": "secret",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String())
		assert.Contains(t, wrongPass.Body.String(), "Invalid username or password")
	})
}
