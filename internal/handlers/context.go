package handlers

import (
	"errors"
	"net/http"

	"github.com/arkya-dev/feedline/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// currentUser returns the caller identity resolved by the auth gate.
func currentUser(c echo.Context) (*models.JwtCustomClaims, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return claims, nil
}

// httpError surfaces a store-layer error at the operation boundary without
// transforming it: the AppError message travels verbatim.
func httpError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(models.HTTPStatus(err), appErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
