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

// ConsultationRepo stores consultation requests.  Status transitions are
// guarded in SQL: approve and reject only match rows that are still pending
// and owned by the deciding professor, so concurrent decisions on the same
// request resolve to exactly one winner.
type ConsultationRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewConsultationRepo returns a ConsultationRepo bound to db.
func NewConsultationRepo(db *sql.DB) *ConsultationRepo {
	return &ConsultationRepo{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

// Create inserts a pending request with no approval fields and returns its id.
func (r *ConsultationRepo) Create(ctx context.Context, studentID, professorID, courseID uint64, purpose string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO consultation_requests (student_id, professor_id, course_id, purpose, status)
		 VALUES (?, ?, ?, ?, ?)`,
		studentID, professorID, courseID, purpose, model.RequestPending)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Get loads the raw request row.
func (r *ConsultationRepo) Get(ctx context.Context, id uint64) (model.ConsultationRequest, error) {
	var cr model.ConsultationRequest
	err := r.db.QueryRowContext(ctx,
		`SELECT request_id, student_id, professor_id, course_id, purpose, status,
		        DATE_FORMAT(approved_date, '%Y-%m-%d'), TIME_FORMAT(approved_time, '%H:%i'),
		        consultation_type, consultation_note, created_at
		 FROM consultation_requests WHERE request_id = ? LIMIT 1`, id).
		Scan(&cr.ID, &cr.StudentID, &cr.ProfessorID, &cr.CourseID, &cr.Purpose, &cr.Status,
			&cr.ApprovedDate, &cr.ApprovedTime, &cr.ConsultationType, &cr.ConsultationNote, &cr.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ConsultationRequest{}, ErrNotFound
	}
	return cr, err
}

// Approve moves a pending request owned by professorID to approved and sets
// the approval fields in the same statement.  It reports false when no row
// matched: missing, owned by someone else, or already decided.
func (r *ConsultationRepo) Approve(ctx context.Context, id, professorID uint64, a model.Approval) (bool, error) {
	return r.decide(ctx,
		`UPDATE consultation_requests
		 SET status = ?, approved_date = ?, approved_time = ?, consultation_type = ?, consultation_note = ?
		 WHERE request_id = ? AND professor_id = ? AND status = ?`,
		model.RequestApproved, a.Date, a.Time, a.Type, a.Note, id, professorID, model.RequestPending)
}

// Reject moves a pending request owned by professorID to rejected.  Approval
// fields stay null.
func (r *ConsultationRepo) Reject(ctx context.Context, id, professorID uint64) (bool, error) {
	return r.decide(ctx,
		`UPDATE consultation_requests SET status = ?
		 WHERE request_id = ? AND professor_id = ? AND status = ?`,
		model.RequestRejected, id, professorID, model.RequestPending)
}

func (r *ConsultationRepo) decide(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByStudent returns a student's own requests, newest first.
func (r *ConsultationRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.RequestView, error) {
	return r.views(ctx, sq.Eq{"cr.student_id": studentID}, "cr.created_at DESC", "cr.request_id DESC")
}

// ListByProfessor returns requests addressed to a professor, newest first.
func (r *ConsultationRepo) ListByProfessor(ctx context.Context, professorID uint64) ([]model.RequestView, error) {
	return r.views(ctx, sq.Eq{"cr.professor_id": professorID}, "cr.created_at DESC", "cr.request_id DESC")
}

// GetForProfessor returns one request only when it is addressed to
// professorID; otherwise ErrNotFound.
func (r *ConsultationRepo) GetForProfessor(ctx context.Context, id, professorID uint64) (model.RequestView, error) {
	out, err := r.views(ctx, sq.Eq{"cr.request_id": id, "cr.professor_id": professorID})
	if err != nil {
		return model.RequestView{}, err
	}
	if len(out) == 0 {
		return model.RequestView{}, ErrNotFound
	}
	return out[0], nil
}

// Schedule returns a professor's approved consultations ordered by date and
// time.
func (r *ConsultationRepo) Schedule(ctx context.Context, professorID uint64) ([]model.RequestView, error) {
	return r.views(ctx,
		sq.Eq{"cr.professor_id": professorID, "cr.status": model.RequestApproved},
		"cr.approved_date", "cr.approved_time")
}

// ListScoped returns every request whose student belongs to a program in
// scope, newest first.
func (r *ConsultationRepo) ListScoped(ctx context.Context, scope policy.Scope) ([]model.RequestView, error) {
	return r.views(ctx, scopeFilter("p.program_code", scope), "cr.created_at DESC", "cr.request_id DESC")
}

func (r *ConsultationRepo) views(ctx context.Context, where sq.Sqlizer, orderBy ...string) ([]model.RequestView, error) {
	q := r.sb.Select(
		"cr.request_id", "cr.purpose", "cr.status",
		"DATE_FORMAT(cr.approved_date, '%Y-%m-%d')", "TIME_FORMAT(cr.approved_time, '%H:%i')",
		"cr.consultation_type", "cr.consultation_note", "cr.created_at",
		"c.course_code", "c.course_name",
		"s.student_number", "s.first_name", "s.last_name", "s.middle_name", "s.section",
		"prof.employee_id", "prof.first_name", "prof.last_name",
		"p.program_code",
	).
		From("consultation_requests cr").
		Join("courses c ON cr.course_id = c.course_id").
		Join("students s ON cr.student_id = s.student_id").
		Join("programs p ON s.program_id = p.program_id").
		Join("professors prof ON cr.professor_id = prof.professor_id").
		Where(where)
	if len(orderBy) > 0 {
		q = q.OrderBy(orderBy...)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build request views: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RequestView{}
	for rows.Next() {
		var v model.RequestView
		if err := rows.Scan(&v.ID, &v.Purpose, &v.Status, &v.ApprovedDate, &v.ApprovedTime,
			&v.ConsultationType, &v.ConsultationNote, &v.CreatedAt,
			&v.CourseCode, &v.CourseName,
			&v.StudentNumber, &v.StudentFirstName, &v.StudentLastName, &v.StudentMiddleName, &v.Section,
			&v.EmployeeID, &v.ProfFirstName, &v.ProfLastName, &v.ProgramCode); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
