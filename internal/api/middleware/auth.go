package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/calckit/calculator-service/internal/core/ports"
	"github.com/calckit/calculator-service/internal/core/security"
)

// UserContextKey is where the resolved principal is stored on the request context.
const UserContextKey = "user"

// Auth resolves the bearer credential to a principal and injects it into the
// request context. Failure reasons are deliberately coarse: a structurally
// valid token whose subject resolves to nobody is indistinguishable from a
// token that never verified.
func Auth(codec *security.TokenCodec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid auth scheme")
			}

			claims := codec.Verify(parts[1])
			if claims == nil || claims.Subject() == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserContextKey, user)

			return next(c)
		}
	}
}
