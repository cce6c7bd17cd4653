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

// StudentRepo provides access to students and their enrollments.  Every
// admin-facing method takes the caller's program scope and filters on the
// student's program code.
type StudentRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewStudentRepo returns a StudentRepo bound to db.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// List returns students visible in scope, optionally filtered by a
// case-insensitive search over student number and names.
func (r *StudentRepo) List(ctx context.Context, scope policy.Scope, search string) ([]model.Student, error) {
	q := r.sb.Select(
		"s.student_id", "s.user_id", "s.student_number", "s.first_name", "s.last_name", "s.middle_name",
		"s.program_id", "p.program_code", "p.program_name", "s.section", "s.status", "u.username",
		"GROUP_CONCAT(DISTINCT c.course_name ORDER BY c.course_name SEPARATOR ', ') AS enrolled_courses",
	).
		From("students s").
		Join("programs p ON s.program_id = p.program_id").
		Join("users u ON s.user_id = u.user_id").
		LeftJoin("enrollments e ON s.student_id = e.student_id").
		LeftJoin("courses c ON e.course_id = c.course_id").
		Where(scopeFilter("p.program_code", scope))
	if search != "" {
		q = q.Where(containsAny(search, "s.student_number", "s.first_name", "s.last_name"))
	}
	query, args, err := q.GroupBy("s.student_id", "u.username").OrderBy("s.last_name", "s.first_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list students: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.UserID, &s.StudentNumber, &s.FirstName, &s.LastName, &s.MiddleName,
			&s.ProgramID, &s.ProgramCode, &s.ProgramName, &s.Section, &s.Status, &s.Username,
			&s.EnrolledCourses); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns one student when it exists and lies within scope; otherwise
// ErrNotFound.
func (r *StudentRepo) Get(ctx context.Context, id uint64, scope policy.Scope) (model.Student, error) {
	return r.getOne(ctx, sq.And{sq.Eq{"s.student_id": id}, scopeFilter("p.program_code", scope)})
}

// GetByUserID returns the student profile owned by a login identity.
func (r *StudentRepo) GetByUserID(ctx context.Context, userID uint64) (model.Student, error) {
	return r.getOne(ctx, sq.Eq{"s.user_id": userID})
}

func (r *StudentRepo) getOne(ctx context.Context, where sq.Sqlizer) (model.Student, error) {
	query, args, err := r.sb.Select(
		"s.student_id", "s.user_id", "s.student_number", "s.first_name", "s.last_name", "s.middle_name",
		"s.program_id", "p.program_code", "p.program_name", "s.section", "s.status", "u.username",
	).
		From("students s").
		Join("programs p ON s.program_id = p.program_id").
		Join("users u ON s.user_id = u.user_id").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Student{}, fmt.Errorf("build get student: %w", err)
	}
	var s model.Student
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.UserID, &s.StudentNumber, &s.FirstName,
		&s.LastName, &s.MiddleName, &s.ProgramID, &s.ProgramCode, &s.ProgramName, &s.Section, &s.Status, &s.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Student{}, ErrNotFound
	}
	return s, err
}

// IDByUserID resolves the student id of a login identity.
func (r *StudentRepo) IDByUserID(ctx context.Context, userID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, "SELECT student_id FROM students WHERE user_id = ? LIMIT 1", userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// Create inserts the login identity and the student profile in one
// transaction.  The username is the student number.  Nothing is left
// behind when either insert fails.
func (r *StudentRepo) Create(ctx context.Context, in model.StudentInput, passwordHash string) (uint64, error) {
	var studentID uint64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		userID, err := createUserTx(ctx, tx, in.StudentNumber, passwordHash, policy.RoleStudent)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO students (user_id, student_number, first_name, last_name, middle_name, program_id, section, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, in.StudentNumber, in.FirstName, in.LastName, in.MiddleName, in.ProgramID, in.Section, in.Status)
		if err != nil {
			return classify(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		studentID = uint64(id)
		return nil
	})
	return studentID, err
}

// Update rewrites the mutable student fields.  The row is only touched when
// its current program lies within scope; otherwise ErrNotFound, the same
// as for a missing row.  The student number never changes.
func (r *StudentRepo) Update(ctx context.Context, id uint64, in model.StudentInput, scope policy.Scope) error {
	pred, predArgs, err := scopeFilter("p.program_code", scope).ToSql()
	if err != nil {
		return fmt.Errorf("build scope: %w", err)
	}
	query := `UPDATE students s
		JOIN programs p ON s.program_id = p.program_id
		SET s.first_name = ?, s.last_name = ?, s.middle_name = ?, s.program_id = ?, s.section = ?, s.status = ?
		WHERE s.student_id = ? AND ` + pred
	args := append([]any{in.FirstName, in.LastName, in.MiddleName, in.ProgramID, in.Section, in.Status, id}, predArgs...)
	res, err := r.db.ExecContext(ctx, query, args...)
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

// Delete removes a student within scope together with its login identity.
func (r *StudentRepo) Delete(ctx context.Context, id uint64, scope policy.Scope) error {
	query, args, err := r.sb.Select("s.user_id").
		From("students s").
		Join("programs p ON s.program_id = p.program_id").
		Where(sq.And{sq.Eq{"s.student_id": id}, scopeFilter("p.program_code", scope)}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete student: %w", err)
	}
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var userID uint64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE student_id = ?", id); err != nil {
			return classify(err)
		}
		return deleteUserTx(ctx, tx, userID)
	})
}

// EnrolledCourses lists a student's courses with the professor assigned to
// the student's section, when there is one.
func (r *StudentRepo) EnrolledCourses(ctx context.Context, studentID uint64) ([]model.EnrolledCourse, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.course_id, c.course_code, c.course_name, c.schedule, pc.section,
		        p.professor_id, p.first_name, p.last_name, p.department
		 FROM enrollments e
		 JOIN students s ON e.student_id = s.student_id
		 JOIN courses c ON e.course_id = c.course_id
		 LEFT JOIN professor_courses pc ON c.course_id = pc.course_id AND pc.section = s.section
		 LEFT JOIN professors p ON pc.professor_id = p.professor_id
		 WHERE e.student_id = ?
		 ORDER BY c.course_code`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EnrolledCourse{}
	for rows.Next() {
		var c model.EnrolledCourse
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Schedule, &c.Section,
			&c.ProfessorID, &c.ProfFirstName, &c.ProfLastName, &c.Department); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Professors lists active professors teaching any course the student is
// enrolled in, one row per professor/course/section.
func (r *StudentRepo) Professors(ctx context.Context, studentID uint64) ([]model.CourseProfessor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT p.professor_id, p.first_name, p.last_name, p.department,
		        c.course_id, c.course_code, c.course_name, pc.section
		 FROM enrollments e
		 JOIN courses c ON e.course_id = c.course_id
		 JOIN professor_courses pc ON c.course_id = pc.course_id
		 JOIN professors p ON pc.professor_id = p.professor_id
		 WHERE e.student_id = ? AND p.status = 'active'
		 ORDER BY p.last_name, p.first_name`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CourseProfessor{}
	for rows.Next() {
		var p model.CourseProfessor
		if err := rows.Scan(&p.ProfessorID, &p.FirstName, &p.LastName, &p.Department,
			&p.CourseID, &p.CourseCode, &p.CourseName, &p.Section); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
