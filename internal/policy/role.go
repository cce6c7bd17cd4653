// Package policy decides which academic programs a caller may see or modify.
// Handlers and services ask the policy for a Scope instead of comparing role
// strings themselves.
package policy

import (
	"errors"
	"strings"
)

// Role names as stored in users.role and carried in session tokens.
const (
	RoleStudent      = "student"
	RoleProfessor    = "professor"
	RoleRegistrar    = "registrar"
	RoleDean         = "dean"
	RoleProgramChair = "program_chair"
)

// ScopeAll grants every known program regardless of role.
const ScopeAll = "ALL"

// ErrUnknownRole is returned by ParseRole for names outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

// Role is one of the closed set of account kinds.  Each variant resolves
// its own program scope.
type Role interface {
	Name() string
	// Admin reports whether the role may use the admin surface.
	Admin() bool
	// ResolveScope returns the programs visible for the given scope tag.
	ResolveScope(programScope string, catalog Catalog) Scope
}

type studentRole struct{}
type professorRole struct{}
type registrarRole struct{}
type deanRole struct{}
type programChairRole struct{}

func (studentRole) Name() string      { return RoleStudent }
func (professorRole) Name() string    { return RoleProfessor }
func (registrarRole) Name() string    { return RoleRegistrar }
func (deanRole) Name() string         { return RoleDean }
func (programChairRole) Name() string { return RoleProgramChair }

func (studentRole) Admin() bool      { return false }
func (professorRole) Admin() bool    { return false }
func (registrarRole) Admin() bool    { return true }
func (deanRole) Admin() bool         { return true }
func (programChairRole) Admin() bool { return true }

func (studentRole) ResolveScope(string, Catalog) Scope   { return Scope{} }
func (professorRole) ResolveScope(string, Catalog) Scope { return Scope{} }

func (registrarRole) ResolveScope(_ string, c Catalog) Scope { return c.All() }

// The dean of CCIT oversees IT and CS.  The pairing is fixed, not derived
// from the programs table.
func (deanRole) ResolveScope(programScope string, c Catalog) Scope {
	if strings.EqualFold(programScope, "CCIT") {
		return c.Of("IT", "CS")
	}
	return Scope{}
}

func (programChairRole) ResolveScope(programScope string, c Catalog) Scope {
	if programScope == "" {
		return Scope{}
	}
	return c.Of(programScope)
}

var roles = map[string]Role{
	RoleStudent:      studentRole{},
	RoleProfessor:    professorRole{},
	RoleRegistrar:    registrarRole{},
	RoleDean:         deanRole{},
	RoleProgramChair: programChairRole{},
}

// ParseRole maps a stored role name onto its variant.
func ParseRole(name string) (Role, error) {
	r, ok := roles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrUnknownRole
	}
	return r, nil
}

// AdminRoles lists the role names allowed on the admin surface.
func AdminRoles() []string {
	return []string{RoleRegistrar, RoleDean, RoleProgramChair}
}
