package model

import "strings"

// NewRequest is the payload a student submits to open a consultation.
type NewRequest struct {
	ProfessorID uint64 `json:"professor_id" validate:"required,gte=1"`
	CourseID    uint64 `json:"course_id" validate:"required,gte=1"`
	Purpose     string `json:"purpose" validate:"required,min=10,max=1000"`
}

// Normalize trims free-text input before validation.
func (r *NewRequest) Normalize() { r.Purpose = strings.TrimSpace(r.Purpose) }

// Normalize trims the optional note; an empty note is stored as NULL.
func (a *Approval) Normalize() {
	a.Date = strings.TrimSpace(a.Date)
	a.Time = strings.TrimSpace(a.Time)
	a.Type = strings.TrimSpace(a.Type)
	a.Note = trimPtr(a.Note)
}

// StudentInput is the admin payload for creating or updating a student.
// StudentNumber and Password are only honoured on create.
type StudentInput struct {
	StudentNumber string  `json:"student_number" validate:"required,max=20"`
	FirstName     string  `json:"first_name" validate:"required,max=50"`
	LastName      string  `json:"last_name" validate:"required,max=50"`
	MiddleName    *string `json:"middle_name" validate:"omitempty,max=50"`
	ProgramID     uint64  `json:"program_id" validate:"required,gte=1"`
	Section       *string `json:"section" validate:"omitempty,max=20"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive"`
	Password      string  `json:"password" validate:"omitempty,max=72"`
}

// Normalize trims names and defaults status to active.
func (s *StudentInput) Normalize() {
	s.StudentNumber = strings.TrimSpace(s.StudentNumber)
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.MiddleName = trimPtr(s.MiddleName)
	s.Section = trimPtr(s.Section)
	s.Status = strings.TrimSpace(s.Status)
	if s.Status == "" {
		s.Status = StatusActive
	}
}

// ProfessorInput is the admin payload for creating or updating a professor.
// EmployeeID, Username and Password are only honoured on create.
type ProfessorInput struct {
	EmployeeID string  `json:"employee_id" validate:"required,max=20"`
	FirstName  string  `json:"first_name" validate:"required,max=50"`
	LastName   string  `json:"last_name" validate:"required,max=50"`
	MiddleName *string `json:"middle_name" validate:"omitempty,max=50"`
	Department string  `json:"department" validate:"required,max=100"`
	Status     string  `json:"status" validate:"omitempty,oneof=active inactive"`
	Username   string  `json:"username" validate:"omitempty,max=50"`
	Password   string  `json:"password" validate:"omitempty,max=72"`
}

// Normalize trims names and defaults status to active.
func (p *ProfessorInput) Normalize() {
	p.EmployeeID = strings.TrimSpace(p.EmployeeID)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.MiddleName = trimPtr(p.MiddleName)
	p.Department = strings.TrimSpace(p.Department)
	p.Username = strings.TrimSpace(p.Username)
	p.Status = strings.TrimSpace(p.Status)
	if p.Status == "" {
		p.Status = StatusActive
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Login is the credential payload for POST /auth/login.
type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims the username; the password is taken verbatim.
func (l *Login) Normalize() { l.Username = strings.TrimSpace(l.Username) }
