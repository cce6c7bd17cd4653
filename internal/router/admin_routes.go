package router

import (
	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/policy"
)

// RegisterAdmin mounts /admin for registrar, dean and program chair.  Every
// route resolves the caller's program scope first; reference-data reads
// are cached per scope, except programs whose student counts must stay
// current.
func RegisterAdmin(api *echo.Group, d Deps) {
	g := api.Group("/admin",
		middleware.JWTAuth(d.Issuer),
		middleware.RequireRole(policy.AdminRoles()...),
		middleware.ProgramScope(d.Policy),
	)
	cache := middleware.NewRedisCache(d.Cache, d.Redis)

	// ---- Students (program scoped) ----
	g.GET("/students", d.Admin.ListStudents)
	g.GET("/students/:id", d.Admin.GetStudent)
	g.POST("/students", d.Admin.CreateStudent)
	g.PUT("/students/:id", d.Admin.UpdateStudent)
	g.DELETE("/students/:id", d.Admin.DeleteStudent)

	// ---- Professors (not program bound) ----
	g.GET("/professors", d.Admin.ListProfessors)
	g.POST("/professors", d.Admin.CreateProfessor)
	g.PUT("/professors/:id", d.Admin.UpdateProfessor)
	g.DELETE("/professors/:id", d.Admin.DeleteProfessor)

	// ---- Reference data ----
	g.GET("/sections", d.Admin.Sections, cache)
	g.GET("/programs", d.Admin.Programs, middleware.RequireRole(policy.RoleRegistrar))

	g.GET("/consultation-requests", d.Admin.ConsultationRequests)
}
