package model

// Program is a read-mostly reference entity seeded at setup.
type Program struct {
	ID          uint64 `json:"program_id"`
	Code        string `json:"program_code"`
	Name        string `json:"program_name"`
	NumSections int    `json:"num_sections"`
	NumStudents int    `json:"num_students"`
}

// Course belongs to exactly one Program.  Admin screens call a course a
// section.
type Course struct {
	ID       uint64  `json:"course_id"`
	Code     string  `json:"course_code"`
	Name     string  `json:"course_name"`
	Schedule *string `json:"schedule"`
}

// Section is a course joined to its program and (optionally) the professor
// assigned to it.
type Section struct {
	Course
	ProgramCode   string  `json:"program_code"`
	ProgramName   string  `json:"program_name"`
	ProfessorID   *uint64 `json:"professor_id"`
	ProfFirstName *string `json:"prof_first_name"`
	ProfLastName  *string `json:"prof_last_name"`
}

// EnrolledCourse is a course on a student's dashboard together with the
// professor teaching it, when one is assigned.
type EnrolledCourse struct {
	Course
	Section       *string `json:"section"`
	ProfessorID   *uint64 `json:"professor_id"`
	ProfFirstName *string `json:"prof_first_name"`
	ProfLastName  *string `json:"prof_last_name"`
	Department    *string `json:"department"`
}

// AssignedCourse is a course on a professor's dashboard (professor_courses row).
type AssignedCourse struct {
	ID      uint64  `json:"course_id"`
	Code    string  `json:"course_code"`
	Name    string  `json:"course_name"`
	Section *string `json:"section"`
}

// CourseProfessor is one professor/course pairing available to a student
// when requesting a consultation.
type CourseProfessor struct {
	ProfessorID uint64  `json:"professor_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Department  string  `json:"department"`
	CourseID    uint64  `json:"course_id"`
	CourseCode  string  `json:"course_code"`
	CourseName  string  `json:"course_name"`
	Section     *string `json:"section"`
}
