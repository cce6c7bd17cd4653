package service

import (
	"context"
	"errors"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/repository"
	"github.com/consulted/consulted-api/internal/utils"
)

// StudentStore is the student side of the directory.
type StudentStore interface {
	List(ctx context.Context, scope policy.Scope, search string) ([]model.Student, error)
	Get(ctx context.Context, id uint64, scope policy.Scope) (model.Student, error)
	GetByUserID(ctx context.Context, userID uint64) (model.Student, error)
	Create(ctx context.Context, in model.StudentInput, passwordHash string) (uint64, error)
	Update(ctx context.Context, id uint64, in model.StudentInput, scope policy.Scope) error
	Delete(ctx context.Context, id uint64, scope policy.Scope) error
	EnrolledCourses(ctx context.Context, studentID uint64) ([]model.EnrolledCourse, error)
	Professors(ctx context.Context, studentID uint64) ([]model.CourseProfessor, error)
}

// ProfessorStore is the professor side of the directory.
type ProfessorStore interface {
	List(ctx context.Context, search string) ([]model.Professor, error)
	GetByUserID(ctx context.Context, userID uint64) (model.Professor, error)
	Create(ctx context.Context, in model.ProfessorInput, passwordHash string) (uint64, error)
	Update(ctx context.Context, id uint64, in model.ProfessorInput) error
	Delete(ctx context.Context, id uint64) error
	Courses(ctx context.Context, professorID uint64) ([]model.AssignedCourse, error)
}

// ProgramStore reads programs and sections.
type ProgramStore interface {
	List(ctx context.Context) ([]model.Program, error)
	CodeByID(ctx context.Context, id uint64) (string, error)
	Sections(ctx context.Context, scope policy.Scope) ([]model.Section, error)
}

// DirectoryService serves dashboards and the admin directory.  Student and
// section access is program scoped; professors are not program bound.
type DirectoryService struct {
	students   StudentStore
	professors ProfessorStore
	programs   ProgramStore
	bcryptCost int
}

// NewDirectoryService wires the directory to its stores.
func NewDirectoryService(students StudentStore, professors ProfessorStore, programs ProgramStore, bcryptCost int) *DirectoryService {
	return &DirectoryService{students: students, professors: professors, programs: programs, bcryptCost: bcryptCost}
}

// StudentDashboard returns the session student's profile and courses.
func (s *DirectoryService) StudentDashboard(ctx context.Context, userID uint64) (model.Student, []model.EnrolledCourse, error) {
	st, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Student{}, nil, ErrStudentNotFound
	}
	if err != nil {
		return model.Student{}, nil, err
	}
	courses, err := s.students.EnrolledCourses(ctx, st.ID)
	return st, courses, err
}

// StudentProfessors lists professors the session student may address.
func (s *DirectoryService) StudentProfessors(ctx context.Context, userID uint64) ([]model.CourseProfessor, error) {
	st, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.students.Professors(ctx, st.ID)
}

// ProfessorDashboard returns the session professor's profile and courses.
func (s *DirectoryService) ProfessorDashboard(ctx context.Context, userID uint64) (model.Professor, []model.AssignedCourse, error) {
	p, err := s.professors.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Professor{}, nil, ErrProfessorNotFound
	}
	if err != nil {
		return model.Professor{}, nil, err
	}
	courses, err := s.professors.Courses(ctx, p.ID)
	return p, courses, err
}

// ListStudents returns students in scope.
func (s *DirectoryService) ListStudents(ctx context.Context, scope policy.Scope, search string) ([]model.Student, error) {
	return s.students.List(ctx, scope, search)
}

// GetStudent returns a student in scope or repository.ErrNotFound.
func (s *DirectoryService) GetStudent(ctx context.Context, scope policy.Scope, id uint64) (model.Student, error) {
	return s.students.Get(ctx, id, scope)
}

// CreateStudent adds a student to a program within scope.  The password
// defaults to the student number.
func (s *DirectoryService) CreateStudent(ctx context.Context, scope policy.Scope, in model.StudentInput) (uint64, error) {
	if err := s.checkProgram(ctx, scope, in.ProgramID); err != nil {
		return 0, err
	}
	password := in.Password
	if password == "" {
		password = in.StudentNumber
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, err
	}
	return s.students.Create(ctx, in, hash)
}

// UpdateStudent rewrites a student.  Both the requested program and the
// row's current program must be in scope.
func (s *DirectoryService) UpdateStudent(ctx context.Context, scope policy.Scope, id uint64, in model.StudentInput) error {
	if err := s.checkProgram(ctx, scope, in.ProgramID); err != nil {
		return err
	}
	return s.students.Update(ctx, id, in, scope)
}

// DeleteStudent removes a student in scope and its login.
func (s *DirectoryService) DeleteStudent(ctx context.Context, scope policy.Scope, id uint64) error {
	return s.students.Delete(ctx, id, scope)
}

// checkProgram fails with ErrInvalidProgram for unknown programs and
// repository.ErrForbidden for programs outside scope.
func (s *DirectoryService) checkProgram(ctx context.Context, scope policy.Scope, programID uint64) error {
	code, err := s.programs.CodeByID(ctx, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidProgram
	}
	if err != nil {
		return err
	}
	if !scope.Full() && !scope.Contains(code) {
		return repository.ErrForbidden
	}
	return nil
}

// ListProfessors returns every professor.
func (s *DirectoryService) ListProfessors(ctx context.Context, search string) ([]model.Professor, error) {
	return s.professors.List(ctx, search)
}

// CreateProfessor adds a professor.  The password defaults to the employee
// id.
func (s *DirectoryService) CreateProfessor(ctx context.Context, in model.ProfessorInput) (uint64, error) {
	password := in.Password
	if password == "" {
		password = in.EmployeeID
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, err
	}
	return s.professors.Create(ctx, in, hash)
}

// UpdateProfessor rewrites a professor.
func (s *DirectoryService) UpdateProfessor(ctx context.Context, id uint64, in model.ProfessorInput) error {
	return s.professors.Update(ctx, id, in)
}

// DeleteProfessor removes a professor and its login.
func (s *DirectoryService) DeleteProfessor(ctx context.Context, id uint64) error {
	return s.professors.Delete(ctx, id)
}

// Programs lists programs with counts.
func (s *DirectoryService) Programs(ctx context.Context) ([]model.Program, error) {
	return s.programs.List(ctx)
}

// Sections lists courses in scope.
func (s *DirectoryService) Sections(ctx context.Context, scope policy.Scope) ([]model.Section, error) {
	return s.programs.Sections(ctx, scope)
}
