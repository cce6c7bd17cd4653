package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
	q "github.com/consulted/consulted-api/internal/queue"
	"github.com/consulted/consulted-api/internal/repository"
)

// ConsultationStore persists consultation requests.  Approve and Reject
// report false when the pending/owner guard matched nothing.
type ConsultationStore interface {
	Create(ctx context.Context, studentID, professorID, courseID uint64, purpose string) (uint64, error)
	Get(ctx context.Context, id uint64) (model.ConsultationRequest, error)
	Approve(ctx context.Context, id, professorID uint64, a model.Approval) (bool, error)
	Reject(ctx context.Context, id, professorID uint64) (bool, error)
	ListByStudent(ctx context.Context, studentID uint64) ([]model.RequestView, error)
	ListByProfessor(ctx context.Context, professorID uint64) ([]model.RequestView, error)
	GetForProfessor(ctx context.Context, id, professorID uint64) (model.RequestView, error)
	Schedule(ctx context.Context, professorID uint64) ([]model.RequestView, error)
	ListScoped(ctx context.Context, scope policy.Scope) ([]model.RequestView, error)
}

// StudentIDs maps a login identity to its student id.
type StudentIDs interface {
	IDByUserID(ctx context.Context, userID uint64) (uint64, error)
}

// ProfessorIDs maps a login identity to its professor id and answers course
// assignment questions.
type ProfessorIDs interface {
	IDByUserID(ctx context.Context, userID uint64) (uint64, error)
	Teaches(ctx context.Context, professorID, courseID uint64) (bool, error)
}

// ConsultationService implements the request lifecycle:
// pending -> approved | rejected, both terminal.
type ConsultationService struct {
	store      ConsultationStore
	students   StudentIDs
	professors ProfessorIDs
	events     EventPublisher
	now        func() time.Time
}

// NewConsultationService wires the lifecycle.  A nil publisher disables
// events.
func NewConsultationService(store ConsultationStore, students StudentIDs, professors ProfessorIDs, events EventPublisher) *ConsultationService {
	if events == nil {
		events = NopPublisher{}
	}
	return &ConsultationService{store: store, students: students, professors: professors, events: events, now: time.Now}
}

func (s *ConsultationService) studentID(ctx context.Context, userID uint64) (uint64, error) {
	id, err := s.students.IDByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrStudentNotFound
	}
	return id, err
}

func (s *ConsultationService) professorID(ctx context.Context, userID uint64) (uint64, error) {
	id, err := s.professors.IDByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrProfessorNotFound
	}
	return id, err
}

// Create opens a pending request from the student behind userID.  A
// professor/course pair with no assignment is accepted and only logged.
func (s *ConsultationService) Create(ctx context.Context, userID uint64, in model.NewRequest) (uint64, error) {
	studentID, err := s.studentID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if ok, err := s.professors.Teaches(ctx, in.ProfessorID, in.CourseID); err != nil {
		log.Warn().Err(err).Uint64("professor_id", in.ProfessorID).Msg("consultation: course assignment lookup failed")
	} else if !ok {
		log.Warn().
			Uint64("student_id", studentID).
			Uint64("professor_id", in.ProfessorID).
			Uint64("course_id", in.CourseID).
			Msg("consultation: professor not assigned to course")
	}
	return s.store.Create(ctx, studentID, in.ProfessorID, in.CourseID, in.Purpose)
}

// ListForStudent returns the session student's own requests.
func (s *ConsultationService) ListForStudent(ctx context.Context, userID uint64) ([]model.RequestView, error) {
	studentID, err := s.studentID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByStudent(ctx, studentID)
}

// ListForProfessor returns requests addressed to the session professor.
func (s *ConsultationService) ListForProfessor(ctx context.Context, userID uint64) ([]model.RequestView, error) {
	professorID, err := s.professorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByProfessor(ctx, professorID)
}

// Detail returns one request addressed to the session professor, or
// repository.ErrNotFound.
func (s *ConsultationService) Detail(ctx context.Context, userID, requestID uint64) (model.RequestView, error) {
	professorID, err := s.professorID(ctx, userID)
	if err != nil {
		return model.RequestView{}, err
	}
	return s.store.GetForProfessor(ctx, requestID, professorID)
}

// Schedule returns the session professor's approved consultations.
func (s *ConsultationService) Schedule(ctx context.Context, userID uint64) ([]model.RequestView, error) {
	professorID, err := s.professorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Schedule(ctx, professorID)
}

// ListScoped returns every request visible to an admin scope.
func (s *ConsultationService) ListScoped(ctx context.Context, scope policy.Scope) ([]model.RequestView, error) {
	return s.store.ListScoped(ctx, scope)
}

// Approve decides a pending request owned by the session professor.  The
// payload has already been validated; nothing is written otherwise.
func (s *ConsultationService) Approve(ctx context.Context, userID, requestID uint64, a model.Approval) error {
	professorID, err := s.professorID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.store.Approve(ctx, requestID, professorID, a)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFoundOrProcessed
	}
	s.announce(ctx, requestID)
	return nil
}

// Reject decides a pending request owned by the session professor.
func (s *ConsultationService) Reject(ctx context.Context, userID, requestID uint64) error {
	professorID, err := s.professorID(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := s.store.Reject(ctx, requestID, professorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFoundOrProcessed
	}
	s.announce(ctx, requestID)
	return nil
}

// announce publishes the decision in the background.  Failures are logged
// and never reach the caller.
func (s *ConsultationService) announce(ctx context.Context, requestID uint64) {
	cr, err := s.store.Get(ctx, requestID)
	if err != nil {
		log.Warn().Err(err).Uint64("request_id", requestID).Msg("consultation: load decided request")
		return
	}
	if cr.IsPending() {
		log.Warn().Uint64("request_id", requestID).Msg("consultation: decided request reads back as pending")
		return
	}
	ev := q.ConsultationDecidedEvent{
		RequestID:        cr.ID,
		StudentID:        cr.StudentID,
		ProfessorID:      cr.ProfessorID,
		CourseID:         cr.CourseID,
		Status:           cr.Status,
		ApprovedDate:     cr.ApprovedDate,
		ApprovedTime:     cr.ApprovedTime,
		ConsultationType: cr.ConsultationType,
		DecidedAt:        s.now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.events.PublishDecision(pctx, ev); err != nil {
			log.Warn().Err(err).Uint64("request_id", ev.RequestID).Msg("consultation: publish decision")
		}
	}()
}
