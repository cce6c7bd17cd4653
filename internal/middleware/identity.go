package middleware

// identity.go holds the context keys set by JWTAuth and ProgramScope and the
// helpers handlers use to read them back.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/utils"
)

const (
	ctxClaims = "claims"           // *utils.Claims
	ctxUserID = "user_id"          // string, for rate-limit and log keys
	ctxRole   = "role"             // string
	ctxScope  = "allowed_programs" // policy.Scope
)

// ClaimsFrom returns the verified session claims, if any.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	cl, ok := c.Get(ctxClaims).(*utils.Claims)
	return cl, ok && cl != nil
}

// UserID returns the authenticated user id, or 0.
func UserID(c echo.Context) uint64 {
	if cl, ok := ClaimsFrom(c); ok {
		return cl.UserID
	}
	return 0
}

// ScopeFrom returns the program scope resolved by ProgramScope.  Without it
// the scope is empty.
func ScopeFrom(c echo.Context) policy.Scope {
	s, _ := c.Get(ctxScope).(policy.Scope)
	return s
}

// userKey identifies the caller for rate-limit and cache keys; "anon" when
// unauthenticated.
func userKey(c echo.Context) string {
	if cl, ok := ClaimsFrom(c); ok {
		return strconv.FormatUint(cl.UserID, 10)
	}
	return "anon"
}
