package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/consulted/consulted-api/internal/config"
	"github.com/consulted/consulted-api/internal/handler"
	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/service"
	"github.com/consulted/consulted-api/internal/utils"
	"github.com/consulted/consulted-api/internal/validation"
)

type stubAuth struct{}

func (stubAuth) Login(context.Context, string, string) (service.LoginResult, error) {
	return service.LoginResult{}, service.ErrInvalidCredentials
}

type stubDirectory struct{ handler.Directory }

func (stubDirectory) ListStudents(context.Context, policy.Scope, string) ([]model.Student, error) {
	return []model.Student{}, nil
}

func (stubDirectory) Programs(context.Context) ([]model.Program, error) {
	return []model.Program{}, nil
}

func (stubDirectory) Sections(context.Context, policy.Scope) ([]model.Section, error) {
	return []model.Section{}, nil
}

type stubConsultations struct{ handler.Consultations }

func (stubConsultations) ListForStudent(context.Context, uint64) ([]model.RequestView, error) {
	return []model.RequestView{}, nil
}

func (stubConsultations) Schedule(context.Context, uint64) ([]model.RequestView, error) {
	return []model.RequestView{}, nil
}

func newTestServer(rdb *redis.Client) (*echo.Echo, *utils.TokenIssuer) {
	issuer := utils.NewTokenIssuer(config.TokenConfig{Secret: "router-secret", TTL: time.Hour})
	dir, cons := stubDirectory{}, stubConsultations{}

	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	Register(e, Deps{
		Issuer:    issuer,
		Policy:    policy.New("IT", "CS", "GRAD"),
		Redis:     rdb,
		RateLimit: config.RateLimitConfig{Enabled: true, Capacity: 1},
		Cache:     config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute},
		Auth:      handler.NewAuthHandler(stubAuth{}),
		Student:   handler.NewStudentHandler(dir, cons),
		Professor: handler.NewProfessorHandler(dir, cons),
		Admin:     handler.NewAdminHandler(dir, cons),
	})
	return e, issuer
}

func TestRouteAccess(t *testing.T) {
	e, issuer := newTestServer(nil)
	tok := func(role, scope string) string {
		at, err := issuer.Issue(1, "u", role, scope)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		return "Bearer " + at.Token
	}

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"health is public", http.MethodGet, "/api/health", "", http.StatusOK},
		{"login reaches handler", http.MethodPost, "/api/auth/login", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/does-not-exist", "", http.StatusNotFound},
		{"student without token", http.MethodGet, "/api/student/consultation-requests", "", http.StatusUnauthorized},
		{"student with garbage token", http.MethodGet, "/api/student/consultation-requests", "Bearer x.y.z", http.StatusForbidden},
		{"student own requests", http.MethodGet, "/api/student/consultation-requests", tok(policy.RoleStudent, ""), http.StatusOK},
		{"professor on student route", http.MethodGet, "/api/student/consultation-requests", tok(policy.RoleProfessor, ""), http.StatusForbidden},
		{"professor schedule", http.MethodGet, "/api/professor/schedule", tok(policy.RoleProfessor, ""), http.StatusOK},
		{"student on professor route", http.MethodGet, "/api/professor/schedule", tok(policy.RoleStudent, ""), http.StatusForbidden},
		{"student on admin route", http.MethodGet, "/api/admin/students", tok(policy.RoleStudent, ""), http.StatusForbidden},
		{"program chair lists students", http.MethodGet, "/api/admin/students", tok(policy.RoleProgramChair, "IT"), http.StatusOK},
		{"dean sections", http.MethodGet, "/api/admin/sections", tok(policy.RoleDean, "CCIT"), http.StatusOK},
		{"dean programs", http.MethodGet, "/api/admin/programs", tok(policy.RoleDean, "CCIT"), http.StatusForbidden},
		{"registrar programs", http.MethodGet, "/api/admin/programs", tok(policy.RoleRegistrar, ""), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}

func TestOnlySectionsAreCached(t *testing.T) {
	// Nothing listens on port 1: every lookup misses and the cache
	// middleware still marks the responses it handles.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	e, issuer := newTestServer(rdb)
	at, err := issuer.Issue(1, "registrar", policy.RoleRegistrar, "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := get("/api/admin/sections"); rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("sections: %d X-Cache=%q", rec.Code, rec.Header().Get("X-Cache"))
	}
	if rec := get("/api/admin/programs"); rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
		t.Fatalf("programs: %d X-Cache=%q", rec.Code, rec.Header().Get("X-Cache"))
	}
}
