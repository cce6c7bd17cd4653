package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
)

func newStudentMock(t *testing.T) (*StudentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStudentRepo(db), mock
}

func itScope() policy.Scope {
	return policy.NewCatalog("IT", "CS", "GRAD").Of("IT")
}

func TestStudentCreateInsertsUserAndProfile(t *testing.T) {
	repo, mock := newStudentMock(t)
	in := model.StudentInput{StudentNumber: "2021-0001", FirstName: "Ana", LastName: "Reyes", ProgramID: 1, Status: model.StatusActive}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("2021-0001", "hash", policy.RoleStudent).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), in, "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 3 {
		t.Fatalf("id = %d, want 3", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStudentCreateDuplicateRollsBack(t *testing.T) {
	repo, mock := newStudentMock(t)
	in := model.StudentInput{StudentNumber: "2021-0001", FirstName: "Ana", LastName: "Reyes", ProgramID: 1, Status: model.StatusActive}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), in, "hash")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStudentUpdateOutOfScopeIsNotFound(t *testing.T) {
	repo, mock := newStudentMock(t)
	in := model.StudentInput{FirstName: "Ana", LastName: "Reyes", ProgramID: 1, Status: model.StatusActive}

	mock.ExpectExec(regexp.QuoteMeta("WHERE s.student_id = ? AND p.program_code IN (?)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), 4, in, itScope()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStudentDeleteRemovesLogin(t *testing.T) {
	repo, mock := newStudentMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.user_id FROM students s")).
		WithArgs(uint64(4), "IT").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).WithArgs(uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 4, itScope()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStudentDeleteWithHistoryConflicts(t *testing.T) {
	repo, mock := newStudentMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.user_id FROM students s")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "foreign key"})
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 4, itScope()); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestStudentListSearchEscapesWildcards(t *testing.T) {
	repo, mock := newStudentMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("LOWER(s.student_number) LIKE ?")).
		WithArgs("IT", `%50\%%`, `%50\%%`, `%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{
			"student_id", "user_id", "student_number", "first_name", "last_name", "middle_name",
			"program_id", "program_code", "program_name", "section", "status", "username", "enrolled_courses",
		}))

	out, err := repo.List(context.Background(), itScope(), "50%")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("List = %#v, want empty non-nil slice", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestProfessorDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewProfessorRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM professors")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProfessorTeaches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewProfessorRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM professor_courses")).WithArgs(uint64(2), uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM professor_courses")).WithArgs(uint64(2), uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	if ok, err := repo.Teaches(context.Background(), 2, 11); err != nil || !ok {
		t.Fatalf("Teaches(11) = %v, %v", ok, err)
	}
	if ok, err := repo.Teaches(context.Background(), 2, 12); err != nil || ok {
		t.Fatalf("Teaches(12) = %v, %v", ok, err)
	}
}
