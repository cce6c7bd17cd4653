package model

// Professor is the profile row owned by exactly one User.  EmployeeID is
// unique and never changes after creation.  Professors are not bound to a
// program, so admin access to them is not program scoped.
type Professor struct {
	ID         uint64  `json:"professor_id"`
	UserID     uint64  `json:"user_id"`
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	Department string  `json:"department"`
	Status     string  `json:"status"`
	// Courses is a comma separated "CODE - Name" aggregate, filled by admin listings.
	Courses *string `json:"courses,omitempty"`
}

// FullName joins first, middle and last name.
func (p Professor) FullName() string {
	return joinName(p.FirstName, p.MiddleName, p.LastName)
}
