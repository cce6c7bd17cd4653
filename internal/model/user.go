package model

import "time"

// User represents an application login identity as stored in the `users`
// table.  Student and professor profiles reference it through user_id; the
// three admin roles have no profile row.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name (student number / employee id by default).
//  PasswordHash – bcrypt hashed password.
//  Role         – student, professor, registrar, dean or program_chair.
//  ProgramScope – program scope tag for admin roles (e.g. ALL, CCIT, IT); empty when unset.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.user_id
	Username     string    // users.username
	PasswordHash string    // users.password
	Role         string    // users.role
	ProgramScope string    // users.program_scope (nullable)
	CreatedAt    time.Time // users.created_at
}
