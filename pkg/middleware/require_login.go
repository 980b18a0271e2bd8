package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wellconnect/pkg/session/service"
)

// RequireLogin guards routes that are pointless without a backend session.
// The stored profile's token is placed in the context for handlers that need
// it; requests without one get a 401 so the UI can route to login.
func RequireLogin(sess service.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sess.Token()
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
			}
			c.Set("token", token)
			return next(c)
		}
	}
}
