package model

import "time"

// Consultation request states.  pending is the only non-terminal state.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Consultation types a professor may choose on approval.
const (
	TypeFaceToFace = "face_to_face"
	TypeOnline     = "online"
)

// ConsultationRequest mirrors the consultation_requests table.  StudentID,
// ProfessorID and CourseID are fixed at creation.  The four approval fields
// are non-nil only when Status is approved.
type ConsultationRequest struct {
	ID               uint64    // consultation_requests.request_id
	StudentID        uint64    // consultation_requests.student_id
	ProfessorID      uint64    // consultation_requests.professor_id
	CourseID         uint64    // consultation_requests.course_id
	Purpose          string    // consultation_requests.purpose
	Status           string    // consultation_requests.status
	ApprovedDate     *string   // consultation_requests.approved_date (YYYY-MM-DD)
	ApprovedTime     *string   // consultation_requests.approved_time (HH:MM)
	ConsultationType *string   // consultation_requests.consultation_type
	ConsultationNote *string   // consultation_requests.consultation_note
	CreatedAt        time.Time // consultation_requests.created_at
}

// IsPending reports whether the request can still be decided.
func (r ConsultationRequest) IsPending() bool { return r.Status == RequestPending }

// Approval carries the fields a professor sets when approving.
type Approval struct {
	Date string  `json:"approved_date" validate:"required,datetime=2006-01-02"`
	Time string  `json:"approved_time" validate:"required,hhmm"`
	Type string  `json:"consultation_type" validate:"required,oneof=face_to_face online"`
	Note *string `json:"consultation_note" validate:"omitempty,max=500"`
}

// RequestView is a consultation request joined with course, student and
// professor names for listings.  Which name columns are populated depends on
// the audience (student, professor or admin).
type RequestView struct {
	ID                uint64     `json:"request_id"`
	Purpose           string     `json:"purpose"`
	Status            string     `json:"status"`
	ApprovedDate      *string    `json:"approved_date"`
	ApprovedTime      *string    `json:"approved_time"`
	ConsultationType  *string    `json:"consultation_type,omitempty"`
	ConsultationNote  *string    `json:"consultation_note,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	CourseCode        string     `json:"course_code"`
	CourseName        string     `json:"course_name"`
	StudentNumber     *string    `json:"student_number,omitempty"`
	StudentFirstName  *string    `json:"student_first_name,omitempty"`
	StudentLastName   *string    `json:"student_last_name,omitempty"`
	StudentMiddleName *string    `json:"student_middle_name,omitempty"`
	Section           *string    `json:"section,omitempty"`
	EmployeeID        *string    `json:"employee_id,omitempty"`
	ProfFirstName     *string    `json:"prof_first_name,omitempty"`
	ProfLastName      *string    `json:"prof_last_name,omitempty"`
	ProgramCode       *string    `json:"program_code,omitempty"`
}
