package router

import (
	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/policy"
)

// RegisterProfessor mounts /professor.  All routes require a valid token and
// the professor role; ownership of individual requests is checked in SQL.
func RegisterProfessor(api *echo.Group, d Deps) {
	g := api.Group("/professor",
		middleware.JWTAuth(d.Issuer),
		middleware.RequireRole(policy.RoleProfessor),
	)
	g.GET("/dashboard", d.Professor.Dashboard)
	g.GET("/consultation-requests", d.Professor.Requests)
	g.GET("/consultation-requests/:id", d.Professor.Request)
	g.PUT("/consultation-requests/:id/approve", d.Professor.Approve)
	g.PUT("/consultation-requests/:id/reject", d.Professor.Reject)
	g.GET("/schedule", d.Professor.Schedule)
}
