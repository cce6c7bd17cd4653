package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/repository"
	"github.com/consulted/consulted-api/internal/utils"
)

// UserFinder looks up login identities.  A missing user is sql.ErrNoRows.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// StudentProfiles resolves a login identity to its student profile.
type StudentProfiles interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Student, error)
}

// ProfessorProfiles resolves a login identity to its professor profile.
type ProfessorProfiles interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Professor, error)
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	users      UserFinder
	students   StudentProfiles
	professors ProfessorProfiles
	tokens     *utils.TokenIssuer
}

// NewAuthService wires the credential check to its stores and issuer.
func NewAuthService(users UserFinder, students StudentProfiles, professors ProfessorProfiles, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{users: users, students: students, professors: professors, tokens: tokens}
}

// LoginResult is a signed token plus the identity and, for students and
// professors, their profile row.
type LoginResult struct {
	Token   utils.AccessToken
	User    model.User
	Profile any // model.Student, model.Professor or nil
}

// Login checks username/password.  Unknown usernames and wrong passwords
// both return ErrInvalidCredentials after a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		utils.BurnPasswordCheck(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, u.Username, u.Role, u.ProgramScope)
	if err != nil {
		return LoginResult{}, err
	}
	res := LoginResult{Token: tok, User: u}

	switch u.Role {
	case policy.RoleStudent:
		p, err := s.students.GetByUserID(ctx, u.ID)
		if err == nil {
			res.Profile = p
		} else if !errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, err
		}
	case policy.RoleProfessor:
		p, err := s.professors.GetByUserID(ctx, u.ID)
		if err == nil {
			res.Profile = p
		} else if !errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, err
		}
	}
	return res, nil
}
