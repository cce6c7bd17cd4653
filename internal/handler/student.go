package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/model"
)

// StudentHandler serves the /student routes.  Every call acts on the
// student behind the session token.
type StudentHandler struct {
	Directory     Directory
	Consultations Consultations
}

func NewStudentHandler(d Directory, cs Consultations) *StudentHandler {
	return &StudentHandler{Directory: d, Consultations: cs}
}

// Dashboard returns the student's profile and enrolled courses.
func (h *StudentHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, courses, err := h.Directory.StudentDashboard(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{
		"student": echo.Map{
			"student_id":     st.ID,
			"student_number": st.StudentNumber,
			"full_name":      st.FullName(),
			"first_name":     st.FirstName,
			"last_name":      st.LastName,
			"middle_name":    st.MiddleName,
			"program":        st.ProgramName,
			"program_code":   st.ProgramCode,
			"section":        st.Section,
		},
		"enrolled_courses": courses,
	})
}

// Professors lists the professors teaching the student's courses.
func (h *StudentHandler) Professors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	profs, err := h.Directory.StudentProfessors(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{"professors": profs})
}

// CreateRequest opens a pending consultation request.
func (h *StudentHandler) CreateRequest(c echo.Context) error {
	var in model.NewRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Consultations.Create(ctx, middleware.UserID(c), in)
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusCreated, echo.Map{
		"message":    "Consultation request submitted successfully",
		"request_id": id,
	})
}

// Requests lists the student's own requests.
func (h *StudentHandler) Requests(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reqs, err := h.Consultations.ListForStudent(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{"requests": reqs})
}
