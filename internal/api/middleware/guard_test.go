package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/core/domain"
)

type stubGuard struct {
	evaluateFn func(ctx context.Context, roles ...string) domain.Decision
}

func (s *stubGuard) Evaluate(ctx context.Context, roles ...string) domain.Decision {
	return s.evaluateFn(ctx, roles...)
}

func run(t *testing.T, g *stubGuard, roles []string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Guard(g, roles...)(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGuard_Authorized(t *testing.T) {
	admin := &domain.User{ID: "u1", Role: domain.RoleAdmin}
	g := &stubGuard{evaluateFn: func(_ context.Context, roles ...string) domain.Decision {
		if len(roles) != 1 || roles[0] != domain.RoleAdmin {
			t.Fatalf("unexpected roles %v", roles)
		}
		return domain.Decision{State: domain.Authorized, User: admin}
	}}

	called := false
	rec := run(t, g, []string{domain.RoleAdmin}, func(c echo.Context) error {
		called = true
		u, ok := CurrentUser(c)
		if !ok || u != admin {
			t.Fatalf("expected user on context")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_Redirects(t *testing.T) {
	tests := []struct {
		name     string
		decision domain.Decision
	}{
		{"no session", domain.Decision{State: domain.Unauthenticated, Redirect: "/login"}},
		{"wrong role", domain.Decision{State: domain.AuthenticatedUnauthorized, User: &domain.User{Role: domain.RoleDoctor}, Redirect: "/login"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &stubGuard{evaluateFn: func(context.Context, ...string) domain.Decision { return tt.decision }}
			rec := run(t, g, []string{domain.RoleAdmin}, func(echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if rec.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", rec.Code)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
				t.Fatalf("expected redirect to /login, got %q", loc)
			}
		})
	}
}

func TestCurrentUser_Absent(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatalf("expected no user")
	}
}
