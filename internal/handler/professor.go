package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/model"
)

// ProfessorHandler serves the /professor routes.  A professor only ever
// sees and decides requests addressed to them.
type ProfessorHandler struct {
	Directory     Directory
	Consultations Consultations
}

func NewProfessorHandler(d Directory, cs Consultations) *ProfessorHandler {
	return &ProfessorHandler{Directory: d, Consultations: cs}
}

func (h *ProfessorHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, courses, err := h.Directory.ProfessorDashboard(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusOK, echo.Map{
		"professor": echo.Map{
			"professor_id": p.ID,
			"employee_id":  p.EmployeeID,
			"full_name":    p.FullName(),
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"middle_name":  p.MiddleName,
			"department":   p.Department,
		},
		"courses": courses,
	})
}

func (h *ProfessorHandler) Requests(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reqs, err := h.Consultations.ListForProfessor(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusOK, echo.Map{"requests": reqs})
}

// Request returns one request addressed to the professor; 404 otherwise.
func (h *ProfessorHandler) Request(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Request not found")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	r, err := h.Consultations.Detail(ctx, middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "Request")
	}
	return ok(c, http.StatusOK, echo.Map{"request": r})
}

// Approve validates the schedule fields before touching the request.
func (h *ProfessorHandler) Approve(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Request not found or already processed")
	}
	var in model.Approval
	if valid, err := bind(c, &in); !valid {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Consultations.Approve(ctx, middleware.UserID(c), id, in); err != nil {
		return respondError(c, err, "Request")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Consultation request approved successfully"})
}

func (h *ProfessorHandler) Reject(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Request not found or already processed")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Consultations.Reject(ctx, middleware.UserID(c), id); err != nil {
		return respondError(c, err, "Request")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Consultation request rejected"})
}

// Schedule lists approved consultations ordered by date and time.
func (h *ProfessorHandler) Schedule(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Consultations.Schedule(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusOK, echo.Map{"schedule": s})
}
