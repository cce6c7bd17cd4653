package router

import (
	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/policy"
)

// RegisterStudent mounts /student.  All routes require a valid token and the
// student role.
func RegisterStudent(api *echo.Group, d Deps) {
	g := api.Group("/student",
		middleware.JWTAuth(d.Issuer),
		middleware.RequireRole(policy.RoleStudent),
	)
	g.GET("/dashboard", d.Student.Dashboard)
	g.GET("/professors", d.Student.Professors)
	g.POST("/consultation-request", d.Student.CreateRequest)
	g.GET("/consultation-requests", d.Student.Requests)
}
