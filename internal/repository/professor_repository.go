package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/consulted/consulted-api/internal/database"
	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
)

// ProfessorRepo provides access to professors and their course
// assignments.  Professors are not bound to a program, so none of these
// methods are scoped.
type ProfessorRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewProfessorRepo returns a ProfessorRepo bound to db.
func NewProfessorRepo(db *sql.DB) *ProfessorRepo {
	return &ProfessorRepo{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// List returns all professors with their taught courses aggregated,
// optionally filtered by a case-insensitive search.
func (r *ProfessorRepo) List(ctx context.Context, search string) ([]model.Professor, error) {
	q := r.sb.Select(
		"p.professor_id", "p.user_id", "p.employee_id", "p.first_name", "p.last_name", "p.middle_name",
		"p.department", "p.status",
		"GROUP_CONCAT(DISTINCT CONCAT(c.course_code, ' - ', c.course_name) ORDER BY c.course_code SEPARATOR ', ') AS courses",
	).
		From("professors p").
		LeftJoin("professor_courses pc ON p.professor_id = pc.professor_id").
		LeftJoin("courses c ON pc.course_id = c.course_id")
	if search != "" {
		q = q.Where(containsAny(search, "p.employee_id", "p.first_name", "p.last_name"))
	}
	query, args, err := q.GroupBy("p.professor_id").OrderBy("p.last_name", "p.first_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list professors: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Professor{}
	for rows.Next() {
		var p model.Professor
		if err := rows.Scan(&p.ID, &p.UserID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.MiddleName,
			&p.Department, &p.Status, &p.Courses); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByUserID returns the professor profile owned by a login identity.
func (r *ProfessorRepo) GetByUserID(ctx context.Context, userID uint64) (model.Professor, error) {
	var p model.Professor
	err := r.db.QueryRowContext(ctx,
		`SELECT professor_id, user_id, employee_id, first_name, last_name, middle_name, department, status
		 FROM professors WHERE user_id = ? LIMIT 1`, userID).
		Scan(&p.ID, &p.UserID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.MiddleName, &p.Department, &p.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Professor{}, ErrNotFound
	}
	return p, err
}

// IDByUserID resolves the professor id of a login identity.
func (r *ProfessorRepo) IDByUserID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, "SELECT professor_id FROM professors WHERE user_id = ? LIMIT 1", userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// Courses lists the courses (and sections) assigned to a professor.
func (r *ProfessorRepo) Courses(ctx context.Context, professorID uint64) ([]model.AssignedCourse, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.course_id, c.course_code, c.course_name, pc.section
		 FROM professor_courses pc
		 JOIN courses c ON pc.course_id = c.course_id
		 WHERE pc.professor_id = ?
		 ORDER BY c.course_code, pc.section`, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AssignedCourse{}
	for rows.Next() {
		var c model.AssignedCourse
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Section); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Teaches reports whether the professor is assigned to the course.
func (r *ProfessorRepo) Teaches(ctx context.Context, professorID, courseID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM professor_courses WHERE professor_id = ? AND course_id = ? LIMIT 1",
		professorID, courseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Create inserts the login identity and the professor profile in one
// transaction.  username defaults to the employee id.
func (r *ProfessorRepo) Create(ctx context.Context, in model.ProfessorInput, passwordHash string) (uint64, error) {
	username := in.Username
	if username == "" {
		username = in.EmployeeID
	}
	var professorID uint64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		userID, err := createUserTx(ctx, tx, username, passwordHash, policy.RoleProfessor)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO professors (user_id, employee_id, first_name, last_name, middle_name, department, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, in.EmployeeID, in.FirstName, in.LastName, in.MiddleName, in.Department, in.Status)
		if err != nil {
			return classify(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		professorID = uint64(id)
		return nil
	})
	return professorID, err
}

// Update rewrites the mutable professor fields.  The employee id never
// changes.
func (r *ProfessorRepo) Update(ctx context.Context, id uint64, in model.ProfessorInput) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE professors SET first_name = ?, last_name = ?, middle_name = ?, department = ?, status = ?
		 WHERE professor_id = ?`,
		in.FirstName, in.LastName, in.MiddleName, in.Department, in.Status, id)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a professor together with its login identity.
func (r *ProfessorRepo) Delete(ctx context.Context, id uint64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var userID uint64
		err := tx.QueryRowContext(ctx,
			"SELECT user_id FROM professors WHERE professor_id = ? FOR UPDATE", id).Scan(&userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM professors WHERE professor_id = ?", id); err != nil {
			return classify(err)
		}
		return deleteUserTx(ctx, tx, userID)
	})
}
