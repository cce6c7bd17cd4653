package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/middleware"
	"github.com/consulted/consulted-api/internal/model"
)

// AdminHandler serves the /admin routes for registrar, dean and program
// chair.  Student, section and request access is limited to the program
// scope resolved by middleware.ProgramScope.
type AdminHandler struct {
	Directory     Directory
	Consultations Consultations
}

func NewAdminHandler(d Directory, cs Consultations) *AdminHandler {
	return &AdminHandler{Directory: d, Consultations: cs}
}

func (h *AdminHandler) ListStudents(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Directory.ListStudents(ctx, middleware.ScopeFrom(c), strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{"students": out})
}

func (h *AdminHandler) GetStudent(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Student not found")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.Directory.GetStudent(ctx, middleware.ScopeFrom(c), id)
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{"student": st})
}

func (h *AdminHandler) CreateStudent(c echo.Context) error {
	var in model.StudentInput
	if valid, err := bind(c, &in); !valid {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Directory.CreateStudent(ctx, middleware.ScopeFrom(c), in)
	if err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "Student created successfully", "student_id": id})
}

func (h *AdminHandler) UpdateStudent(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Student not found")
	}
	var in model.StudentInput
	if valid, err := bind(c, &in); !valid {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Directory.UpdateStudent(ctx, middleware.ScopeFrom(c), id, in); err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Student updated successfully"})
}

func (h *AdminHandler) DeleteStudent(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Student not found")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Directory.DeleteStudent(ctx, middleware.ScopeFrom(c), id); err != nil {
		return respondError(c, err, "Student")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Student deleted successfully"})
}

// ListProfessors is not program scoped.
func (h *AdminHandler) ListProfessors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Directory.ListProfessors(ctx, strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusOK, echo.Map{"professors": out})
}

func (h *AdminHandler) CreateProfessor(c echo.Context) error {
	var in model.ProfessorInput
	if valid, err := bind(c, &in); !valid {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Directory.CreateProfessor(ctx, in)
	if err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "Professor created successfully", "professor_id": id})
}

func (h *AdminHandler) UpdateProfessor(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Professor not found")
	}
	var in model.ProfessorInput
	if valid, err := bind(c, &in); !valid {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Directory.UpdateProfessor(ctx, id, in); err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Professor updated successfully"})
}

func (h *AdminHandler) DeleteProfessor(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusNotFound, "Professor not found")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Directory.DeleteProfessor(ctx, id); err != nil {
		return respondError(c, err, "Professor")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Professor deleted successfully"})
}

func (h *AdminHandler) Sections(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Directory.Sections(ctx, middleware.ScopeFrom(c))
	if err != nil {
		return respondError(c, err, "Section")
	}
	return ok(c, http.StatusOK, echo.Map{"sections": out})
}

// Programs is mounted for the registrar only.
func (h *AdminHandler) Programs(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Directory.Programs(ctx)
	if err != nil {
		return respondError(c, err, "Program")
	}
	return ok(c, http.StatusOK, echo.Map{"programs": out})
}

func (h *AdminHandler) ConsultationRequests(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Consultations.ListScoped(ctx, middleware.ScopeFrom(c))
	if err != nil {
		return respondError(c, err, "Request")
	}
	return ok(c, http.StatusOK, echo.Map{"requests": out})
}
