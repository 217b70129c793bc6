package middleware

import (
	"strings"

	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// RequireAuth verifies the bearer credential and stores the resolved user
// identity in the request context. Verification failures surface as 401
// with no internal detail.
func RequireAuth(verifier domrepo.TokenVerifier, logger *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("missing bearer token"))
			}

			userID, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				logger.Warn("unauthenticated request",
					xlogger.String("path", c.Path()),
				)
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("invalid or expired token"))
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user identity set by RequireAuth.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
