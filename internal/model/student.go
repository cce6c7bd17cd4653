package model

// Student status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Student is the profile row owned by exactly one User.  StudentNumber is
// unique and never changes after creation.
type Student struct {
	ID            uint64  `json:"student_id"`
	UserID        uint64  `json:"user_id"`
	StudentNumber string  `json:"student_number"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	MiddleName    *string `json:"middle_name"`
	ProgramID     uint64  `json:"program_id"`
	ProgramCode   string  `json:"program_code"`
	ProgramName   string  `json:"program_name"`
	Section       *string `json:"section"`
	Status        string  `json:"status"`
	Username      string  `json:"username,omitempty"`
	// EnrolledCourses is a comma separated aggregate, filled by admin listings.
	EnrolledCourses *string `json:"enrolled_courses,omitempty"`
}

// FullName joins first, middle and last name the way dashboards display it.
func (s Student) FullName() string {
	return joinName(s.FirstName, s.MiddleName, s.LastName)
}

func joinName(first string, middle *string, last string) string {
	name := first
	if middle != nil && *middle != "" {
		name += " " + *middle
	}
	if last != "" {
		name += " " + last
	}
	return name
}
