package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
	q "github.com/consulted/consulted-api/internal/queue"
	"github.com/consulted/consulted-api/internal/repository"
)

// memStore is an in-memory ConsultationStore applying the same
// pending/owner guard as the SQL implementation.
type memStore struct {
	mu   sync.Mutex
	next uint64
	rows map[uint64]*model.ConsultationRequest
}

func newMemStore() *memStore {
	return &memStore{rows: map[uint64]*model.ConsultationRequest{}}
}

func (m *memStore) Create(_ context.Context, studentID, professorID, courseID uint64, purpose string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.rows[m.next] = &model.ConsultationRequest{
		ID: m.next, StudentID: studentID, ProfessorID: professorID, CourseID: courseID,
		Purpose: purpose, Status: model.RequestPending, CreatedAt: time.Now(),
	}
	return m.next, nil
}

func (m *memStore) Get(_ context.Context, id uint64) (model.ConsultationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cr, ok := m.rows[id]
	if !ok {
		return model.ConsultationRequest{}, repository.ErrNotFound
	}
	return *cr, nil
}

func (m *memStore) Approve(_ context.Context, id, professorID uint64, a model.Approval) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cr, ok := m.rows[id]
	if !ok || cr.ProfessorID != professorID || !cr.IsPending() {
		return false, nil
	}
	cr.Status = model.RequestApproved
	cr.ApprovedDate, cr.ApprovedTime, cr.ConsultationType, cr.ConsultationNote = &a.Date, &a.Time, &a.Type, a.Note
	return true, nil
}

func (m *memStore) Reject(_ context.Context, id, professorID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cr, ok := m.rows[id]
	if !ok || cr.ProfessorID != professorID || !cr.IsPending() {
		return false, nil
	}
	cr.Status = model.RequestRejected
	return true, nil
}

func (m *memStore) views(match func(*model.ConsultationRequest) bool) []model.RequestView {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.RequestView{}
	for _, cr := range m.rows {
		if match(cr) {
			out = append(out, model.RequestView{ID: cr.ID, Purpose: cr.Purpose, Status: cr.Status,
				ApprovedDate: cr.ApprovedDate, ApprovedTime: cr.ApprovedTime})
		}
	}
	return out
}

func (m *memStore) ListByStudent(_ context.Context, studentID uint64) ([]model.RequestView, error) {
	return m.views(func(cr *model.ConsultationRequest) bool { return cr.StudentID == studentID }), nil
}

func (m *memStore) ListByProfessor(_ context.Context, professorID uint64) ([]model.RequestView, error) {
	return m.views(func(cr *model.ConsultationRequest) bool { return cr.ProfessorID == professorID }), nil
}

func (m *memStore) GetForProfessor(_ context.Context, id, professorID uint64) (model.RequestView, error) {
	out := m.views(func(cr *model.ConsultationRequest) bool { return cr.ID == id && cr.ProfessorID == professorID })
	if len(out) == 0 {
		return model.RequestView{}, repository.ErrNotFound
	}
	return out[0], nil
}

func (m *memStore) Schedule(_ context.Context, professorID uint64) ([]model.RequestView, error) {
	return m.views(func(cr *model.ConsultationRequest) bool {
		return cr.ProfessorID == professorID && cr.Status == model.RequestApproved
	}), nil
}

func (m *memStore) ListScoped(_ context.Context, scope policy.Scope) ([]model.RequestView, error) {
	if scope.Empty() {
		return []model.RequestView{}, nil
	}
	return m.views(func(*model.ConsultationRequest) bool { return true }), nil
}

// idMap resolves user ids to profile ids; teaches holds professor/course pairs.
type idMap struct {
	ids     map[uint64]uint64
	teaches map[[2]uint64]bool
}

func (f idMap) IDByUserID(_ context.Context, userID uint64) (uint64, error) {
	id, ok := f.ids[userID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

func (f idMap) Teaches(_ context.Context, professorID, courseID uint64) (bool, error) {
	return f.teaches[[2]uint64{professorID, courseID}], nil
}

type chanPublisher chan q.ConsultationDecidedEvent

func (c chanPublisher) PublishDecision(_ context.Context, ev q.ConsultationDecidedEvent) error {
	c <- ev
	return nil
}

type fakeUsers map[string]model.User

func (f fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type fakeStudents struct {
	byUser  map[uint64]model.Student
	created []model.StudentInput
	hashes  []string
}

func (f *fakeStudents) List(context.Context, policy.Scope, string) ([]model.Student, error) {
	return nil, nil
}

func (f *fakeStudents) Get(context.Context, uint64, policy.Scope) (model.Student, error) {
	return model.Student{}, repository.ErrNotFound
}

func (f *fakeStudents) GetByUserID(_ context.Context, userID uint64) (model.Student, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return model.Student{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeStudents) Create(_ context.Context, in model.StudentInput, hash string) (uint64, error) {
	f.created = append(f.created, in)
	f.hashes = append(f.hashes, hash)
	return uint64(len(f.created)), nil
}

func (f *fakeStudents) Update(context.Context, uint64, model.StudentInput, policy.Scope) error {
	return nil
}

func (f *fakeStudents) Delete(context.Context, uint64, policy.Scope) error { return nil }

func (f *fakeStudents) EnrolledCourses(context.Context, uint64) ([]model.EnrolledCourse, error) {
	return []model.EnrolledCourse{}, nil
}

func (f *fakeStudents) Professors(context.Context, uint64) ([]model.CourseProfessor, error) {
	return []model.CourseProfessor{}, nil
}

type fakeProfessors struct {
	byUser map[uint64]model.Professor
	hashes []string
}

func (f *fakeProfessors) List(context.Context, string) ([]model.Professor, error) { return nil, nil }

func (f *fakeProfessors) GetByUserID(_ context.Context, userID uint64) (model.Professor, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return model.Professor{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfessors) Create(_ context.Context, _ model.ProfessorInput, hash string) (uint64, error) {
	f.hashes = append(f.hashes, hash)
	return 1, nil
}

func (f *fakeProfessors) Update(context.Context, uint64, model.ProfessorInput) error { return nil }
func (f *fakeProfessors) Delete(context.Context, uint64) error                        { return nil }

func (f *fakeProfessors) Courses(context.Context, uint64) ([]model.AssignedCourse, error) {
	return []model.AssignedCourse{}, nil
}

type fakePrograms map[uint64]string

func (f fakePrograms) List(context.Context) ([]model.Program, error) { return nil, nil }

func (f fakePrograms) CodeByID(_ context.Context, id uint64) (string, error) {
	code, ok := f[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return code, nil
}

func (f fakePrograms) Sections(context.Context, policy.Scope) ([]model.Section, error) {
	return nil, nil
}
