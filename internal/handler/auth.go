package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consulted/consulted-api/internal/model"
)

// AuthHandler serves POST /auth/login.
type AuthHandler struct {
	Auth Authenticator
}

func NewAuthHandler(a Authenticator) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// Login verifies credentials and returns a bearer token with the caller's
// identity merged with their student/professor profile.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Login
	if valid, err := bind(c, &req); !valid {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, err, "")
	}

	user := echo.Map{}
	if res.Profile != nil {
		// Flatten the profile into the user object.
		if raw, err := json.Marshal(res.Profile); err == nil {
			_ = json.Unmarshal(raw, &user)
		}
	}
	user["user_id"] = res.User.ID
	user["username"] = res.User.Username
	user["role"] = res.User.Role
	if res.User.ProgramScope != "" {
		user["program_scope"] = res.User.ProgramScope
	} else {
		user["program_scope"] = nil
	}

	return ok(c, http.StatusOK, echo.Map{
		"message":    "Login successful",
		"token":      res.Token.Token,
		"expires_at": res.Token.Exp,
		"user":       user,
	})
}
