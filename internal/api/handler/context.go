package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calckit/calculator-service/internal/api/middleware"
	"github.com/calckit/calculator-service/internal/core/domain"
)

// ctxUser extracts the principal injected by the Auth middleware. Its absence
// means the middleware never ran or a handler was wired outside the protected
// group; reject with 401 rather than proceed unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
	}
	return user, nil
}
