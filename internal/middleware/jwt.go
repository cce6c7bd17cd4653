package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/consulted/consulted-api/internal/utils"
)

// JWTAuth verifies the Bearer token and stores its claims in the context.
// No token is 401; any verification failure (expired, malformed, bad
// signature) is 403 with one generic message.
func JWTAuth(issuer *utils.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Access denied. No token provided.",
				})
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Invalid or expired token.",
				})
			}

			c.Set(ctxClaims, claims)
			c.Set(ctxUserID, strconv.FormatUint(claims.UserID, 10))
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// bearer extracts the token from "Bearer <token>".
func bearer(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
