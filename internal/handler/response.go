package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/consulted/consulted-api/internal/repository"
	"github.com/consulted/consulted-api/internal/service"
	"github.com/consulted/consulted-api/internal/validation"
)

// dbTimeout bounds every handler's store calls.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// ok writes {success:true, ...payload}.
func ok(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail writes {success:false, message}.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// normalizer is implemented by request payloads that trim themselves.
type normalizer interface{ Normalize() }

// bind decodes the JSON body into v, trims it and runs the validator.  The
// returned error is already a response.
func bind(c echo.Context, v normalizer) (bool, error) {
	if err := c.Bind(v); err != nil {
		return false, fail(c, http.StatusBadRequest, "Invalid request body")
	}
	v.Normalize()
	if err := c.Validate(v); err != nil {
		return false, respondError(c, err, "")
	}
	return true, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// respondError maps service and repository errors to HTTP responses.  noun
// names the resource for 404/409 messages ("Student", "Professor").
// Anything unrecognised is logged and returned as a generic 500.
func respondError(c echo.Context, err error, noun string) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  verrs,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "Incorrect credentials. Please try again.")
	case errors.Is(err, service.ErrNotFoundOrProcessed):
		return fail(c, http.StatusNotFound, "Request not found or already processed")
	case errors.Is(err, service.ErrStudentNotFound):
		return fail(c, http.StatusNotFound, "Student not found")
	case errors.Is(err, service.ErrProfessorNotFound):
		return fail(c, http.StatusNotFound, "Professor not found")
	case errors.Is(err, service.ErrInvalidProgram):
		return fail(c, http.StatusBadRequest, "Invalid program")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "Access denied to this program")
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, or(noun, "Resource")+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return fail(c, http.StatusBadRequest, duplicateMessage(noun))
	case errors.Is(err, repository.ErrConflict):
		return fail(c, http.StatusConflict, or(noun, "Resource")+" has related records and cannot be deleted")
	}

	log.Error().Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
	return fail(c, http.StatusInternalServerError, "Server error")
}

func duplicateMessage(noun string) string {
	switch noun {
	case "Student":
		return "Student number already exists"
	case "Professor":
		return "Employee ID or username already exists"
	}
	return "Duplicate entry"
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// HTTPErrorHandler renders errors that escape handlers (unknown routes,
// wrong methods, panics recovered by middleware) in the same envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := "Server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			message = "Route not found"
		case http.StatusInternalServerError:
		default:
			if m, isStr := he.Message.(string); isStr {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("path", c.Request().URL.Path).
			Msg("unhandled error")
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = fail(c, status, message)
}
