package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/repositories"
)

// currentUser resolves the authenticated user from the Firebase UID stored
// by the auth middleware. Mutating calls without a session fail here.
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, *echo.HTTPError) {
	firebaseUID, ok := c.Get("firebaseUID").(string)
	if !ok || firebaseUID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := users.GetUserByFirebaseUID(firebaseUID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user has no profile")
	}
	return user, nil
}
