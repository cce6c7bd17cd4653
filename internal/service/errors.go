// Package service holds the business rules between handlers and
// repositories: authentication, the consultation request lifecycle and the
// program-scoped directory.
package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("incorrect credentials")
	// ErrNotFoundOrProcessed is returned by approve/reject when the guard
	// matched nothing: missing, not owned, or already decided.
	ErrNotFoundOrProcessed = errors.New("request not found or already processed")
	// ErrStudentNotFound means the session user has no student profile.
	ErrStudentNotFound = errors.New("student not found")
	// ErrProfessorNotFound means the session user (or the addressed
	// professor) has no professor profile.
	ErrProfessorNotFound = errors.New("professor not found")
	// ErrInvalidProgram is returned when a payload names a program that
	// does not exist.
	ErrInvalidProgram = errors.New("invalid program")
)
