package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDSN(t *testing.T) {
	got := DSN("app", "secret", "db", "3306", "consulted")
	if !strings.HasPrefix(got, "app:secret@tcp(db:3306)/consulted?") {
		t.Fatalf("unexpected dsn %q", got)
	}
	if !strings.Contains(got, "clientFoundRows=true") || !strings.Contains(got, "parseTime=true") {
		t.Fatalf("dsn missing options: %q", got)
	}
	if got := DSN("app", "", "db", "3306", "x"); !strings.HasPrefix(got, "app@tcp") {
		t.Fatalf("empty password should omit colon: %q", got)
	}
}

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO users (username) VALUES (?)", "x")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = WithTx(context.Background(), db, func(tx *sql.Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
