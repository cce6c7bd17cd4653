package handler

import (
	"context"

	"github.com/consulted/consulted-api/internal/model"
	"github.com/consulted/consulted-api/internal/policy"
	"github.com/consulted/consulted-api/internal/service"
)

// The handlers depend on these views of the service layer; *service.AuthService,
// *service.ConsultationService and *service.DirectoryService satisfy them.

type Authenticator interface {
	Login(ctx context.Context, username, password string) (service.LoginResult, error)
}

type Consultations interface {
	Create(ctx context.Context, userID uint64, in model.NewRequest) (uint64, error)
	ListForStudent(ctx context.Context, userID uint64) ([]model.RequestView, error)
	ListForProfessor(ctx context.Context, userID uint64) ([]model.RequestView, error)
	Detail(ctx context.Context, userID, requestID uint64) (model.RequestView, error)
	Schedule(ctx context.Context, userID uint64) ([]model.RequestView, error)
	ListScoped(ctx context.Context, scope policy.Scope) ([]model.RequestView, error)
	Approve(ctx context.Context, userID, requestID uint64, a model.Approval) error
	Reject(ctx context.Context, userID, requestID uint64) error
}

type Directory interface {
	StudentDashboard(ctx context.Context, userID uint64) (model.Student, []model.EnrolledCourse, error)
	StudentProfessors(ctx context.Context, userID uint64) ([]model.CourseProfessor, error)
	ProfessorDashboard(ctx context.Context, userID uint64) (model.Professor, []model.AssignedCourse, error)
	ListStudents(ctx context.Context, scope policy.Scope, search string) ([]model.Student, error)
	GetStudent(ctx context.Context, scope policy.Scope, id uint64) (model.Student, error)
	CreateStudent(ctx context.Context, scope policy.Scope, in model.StudentInput) (uint64, error)
	UpdateStudent(ctx context.Context, scope policy.Scope, id uint64, in model.StudentInput) error
	DeleteStudent(ctx context.Context, scope policy.Scope, id uint64) error
	ListProfessors(ctx context.Context, search string) ([]model.Professor, error)
	CreateProfessor(ctx context.Context, in model.ProfessorInput) (uint64, error)
	UpdateProfessor(ctx context.Context, id uint64, in model.ProfessorInput) error
	DeleteProfessor(ctx context.Context, id uint64) error
	Programs(ctx context.Context) ([]model.Program, error)
	Sections(ctx context.Context, scope policy.Scope) ([]model.Section, error)
}

var (
	_ Authenticator = (*service.AuthService)(nil)
	_ Consultations = (*service.ConsultationService)(nil)
	_ Directory     = (*service.DirectoryService)(nil)
)
