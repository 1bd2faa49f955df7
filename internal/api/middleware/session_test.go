package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Akhilesh53/authcore/internal/infrastructure/db/memory"
)

func runGuard(t *testing.T, sessions *memory.SessionManager, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user_id").(string))
	}
	err := Session(sessions)(next)(c)
	return rec, err
}

func TestSessionGuard_AllowsValidToken(t *testing.T) {
	sessions := memory.NewSessionManager(time.Hour)
	tok, err := sessions.Create(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	rec, err := runGuard(t, sessions, "Bearer "+tok)
	if err != nil {
		t.Fatalf("guard rejected valid session: %v", err)
	}
	if rec.Body.String() != "user-42" {
		t.Fatalf("expected injected user_id, got %q", rec.Body.String())
	}
}

func TestSessionGuard_RejectsAnonymous(t *testing.T) {
	sessions := memory.NewSessionManager(time.Hour)

	for name, header := range map[string]string{
		"no header":     "",
		"wrong scheme":  "Basic dXNlcg==",
		"unknown token": "Bearer not-a-session",
	} {
		_, err := runGuard(t, sessions, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %v", name, err)
		}
	}
}

func TestSessionGuard_RejectsDestroyedSession(t *testing.T) {
	sessions := memory.NewSessionManager(time.Hour)
	tok, _ := sessions.Create(context.Background(), "user-43")
	_ = sessions.Destroy(context.Background(), tok)

	_, err := runGuard(t, sessions, "Bearer "+tok)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %v", err)
	}
}
