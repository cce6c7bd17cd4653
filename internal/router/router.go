// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/consulted/consulted-api/internal/config"
	"github.com/consulted/consulted-api/internal/handler"
	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/utils"
)

// Deps is everything the route groups need.  Redis may be nil; the rate
// limiter and cache then pass requests through.
type Deps struct {
	Issuer    *utils.TokenIssuer
	Policy    *policy.Policy
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig

	Auth      *handler.AuthHandler
	Student   *handler.StudentHandler
	Professor *handler.ProfessorHandler
	Admin     *handler.AdminHandler
}

// Register mounts every route under /api.
func Register(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	RegisterPublic(api, d)
	RegisterStudent(api, d)
	RegisterProfessor(api, d)
	RegisterAdmin(api, d)
}

// RegisterPublic mounts the unauthenticated routes: health and login.  Login
// sits behind the Redis token bucket.
func RegisterPublic(api *echo.Group, d Deps) {
	api.GET("/health", handler.Health)
	api.POST("/auth/login", d.Auth.Login, middleware.NewTokenBucket(d.RateLimit, d.Redis))
}
