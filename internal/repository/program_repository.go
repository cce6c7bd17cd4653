package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
)

// ProgramRepo reads programs and their courses (sections).
type ProgramRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewProgramRepo returns a ProgramRepo bound to db.
func NewProgramRepo(db *sql.DB) *ProgramRepo {
	return &ProgramRepo{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// List returns every program with its number of sections and students.
func (r *ProgramRepo) List(ctx context.Context) ([]model.Program, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.program_id, p.program_code, p.program_name,
		        COUNT(DISTINCT c.course_id) AS num_sections,
		        COUNT(DISTINCT s.student_id) AS num_students
		 FROM programs p
		 LEFT JOIN courses c ON p.program_id = c.program_id
		 LEFT JOIN students s ON p.program_id = s.program_id
		 GROUP BY p.program_id
		 ORDER BY p.program_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Program{}
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.NumSections, &p.NumStudents); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Codes returns all program codes; used to seed the policy catalog.
func (r *ProgramRepo) Codes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT program_code FROM programs ORDER BY program_code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

// CodeByID returns the code of a program, or ErrNotFound.
func (r *ProgramRepo) CodeByID(ctx context.Context, id uint64) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx, "SELECT program_code FROM programs WHERE program_id = ? LIMIT 1", id).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return code, err
}

// Sections lists courses in scope with their program and assigned
// professor.
func (r *ProgramRepo) Sections(ctx context.Context, scope policy.Scope) ([]model.Section, error) {
	query, args, err := r.sb.Select(
		"c.course_id", "c.course_code", "c.course_name", "c.schedule", "p.program_code", "p.program_name",
		"prof.professor_id", "prof.first_name", "prof.last_name",
	).
		From("courses c").
		Join("programs p ON c.program_id = p.program_id").
		LeftJoin("professor_courses pc ON c.course_id = pc.course_id").
		LeftJoin("professors prof ON pc.professor_id = prof.professor_id").
		Where(scopeFilter("p.program_code", scope)).
		OrderBy("c.course_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sections: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Section{}
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Schedule, &s.ProgramCode, &s.ProgramName,
			&s.ProfessorID, &s.ProfFirstName, &s.ProfLastName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
