package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/policy"
)

// ProgramScope resolves the caller's program scope once per request and
// stores it for handlers (see ScopeFrom).  It never rejects: an empty scope
// simply matches nothing downstream.
func ProgramScope(p *policy.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var s policy.Scope
			if cl, ok := ClaimsFrom(c); ok {
				s = p.ScopeFor(cl.Role, cl.ProgramScope)
			}
			c.Set(ctxScope, s)
			return next(c)
		}
	}
}
