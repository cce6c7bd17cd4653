package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/consulted/consulted-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "user_id, username, password, role, COALESCE(program_scope, '')"

// GetByUsername fetches a user by exact username.  sql.ErrNoRows is
// returned unchanged when absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? LIMIT 1",
		strings.TrimSpace(username)).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.ProgramScope)
	return u, err
}

// createUserTx inserts a login identity inside tx and returns its id.
func createUserTx(ctx context.Context, tx *sql.Tx, username, hash, role string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, password, role) VALUES (?, ?, ?)",
		username, hash, role)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// deleteUserTx removes a login identity inside tx.
func deleteUserTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM users WHERE user_id = ?", userID)
	return classify(err)
}
