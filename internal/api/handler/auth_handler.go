package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/api/metrics"
	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
	"github.com/medisys/opd-console/internal/core/service"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
)

type AuthHandler struct {
	login     ports.LoginService
	sessions  ports.SessionStore
	loginPath string
}

func NewAuthHandler(login ports.LoginService, sessions ports.SessionStore, loginPath string) *AuthHandler {
	return &AuthHandler{login: login, sessions: sessions, loginPath: loginPath}
}

type loginRequest struct {
	Role     string `json:"role"     validate:"omitempty,oneof=admin doctor"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Redirect string       `json:"redirect"`
	User     *domain.User `json:"user"`
}

type loginView struct {
	Roles         []string     `json:"roles"`
	DefaultRole   string       `json:"defaultRole"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

type sessionView struct {
	User           *domain.User `json:"user"`
	HasToken       bool         `json:"hasToken"`
	TokenExpiresAt *time.Time   `json:"tokenExpiresAt,omitempty"`
	TokenExpired   bool         `json:"tokenExpired,omitempty"`
}

// LoginPage describes the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginView
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	view := loginView{
		Roles:       []string{domain.RoleAdmin, domain.RoleDoctor},
		DefaultRole: domain.RoleAdmin,
	}
	if lookup := h.sessions.GetUser(c.Request().Context()); lookup.Status == domain.LookupFound {
		view.Authenticated = true
		view.User = lookup.User
	}
	return c.JSON(http.StatusOK, view)
}

// Login authenticates against the endpoint for the chosen role and stores
// the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Role and credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = domain.RoleAdmin
	}

	redirect, user, err := h.login.Login(c.Request().Context(), req.Role, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "failed").Inc()
		var se *httpclient.ServerError
		if errors.As(err, &se) && se.Message == "" {
			return echo.NewHTTPError(se.StatusCode(), "Login Failed")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues(req.Role, "ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Redirect: redirect, User: user})
}

// Logout clears the stored session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.login.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out", Redirect: h.loginPath})
}

// Home sends the operator to the dashboard for the stored role.
//
// @Summary      Landing redirect
// @Tags         auth
// @Success      302
// @Router       / [get]
func (h *AuthHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.login.LandingPath(c.Request().Context()))
}

// Session shows the stored session. Token expiry is read from the JWT
// without verification and is informational only.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionView
// @Failure      302
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	view := sessionView{User: user}
	if tok, ok := h.sessions.GetToken(c.Request().Context()); ok {
		view.HasToken = true
		if exp, ok := service.TokenExpiry(tok); ok {
			view.TokenExpiresAt = &exp
			view.TokenExpired = time.Now().After(exp)
		}
	}
	return c.JSON(http.StatusOK, view)
}
