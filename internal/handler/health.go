package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring.
func Health(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{
		"message":   "ConsultEd API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
