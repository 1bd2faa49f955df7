package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Akhilesh53/authcore/internal/core/domain"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, email, password, displayName string) (string, error)
	loginFn         func(ctx context.Context, email, password string) (string, error)
	requestResetFn  func(ctx context.Context, email string) error
	completeResetFn func(ctx context.Context, token, newPassword, confirm string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, displayName string) (string, error) {
	return s.registerFn(ctx, email, password, displayName)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) ChangePassword(context.Context, string, string, string) error {
	return nil
}

func (s *stubAuthService) RequestReset(ctx context.Context, email string) error {
	return s.requestResetFn(ctx, email)
}

func (s *stubAuthService) CompleteReset(ctx context.Context, token, newPassword, confirm string) (string, error) {
	return s.completeResetFn(ctx, token, newPassword, confirm)
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotAuthenticated
}

func newTestContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, email, password, displayName string) (string, error) {
			if email != "alice@example.com" || password != "s3cretpass" || displayName != "Alice" {
				t.Fatalf("unexpected args: %s %s %s", email, password, displayName)
			}
			return "user-1", nil
		},
	}
	h := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newTestContext(t, "/auth/register",
		`{"email":"alice@example.com","password":"s3cretpass","display_name":"Alice"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_RejectsInvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string) (string, error) {
			t.Fatal("service must not be called for invalid payloads")
			return "", nil
		},
	}, zerolog.Nop())

	for name, body := range map[string]string{
		"bad email":      `{"email":"nope","password":"s3cretpass"}`,
		"short password": `{"email":"a@example.com","password":"short"}`,
		"missing fields": `{}`,
	} {
		c, _ := newTestContext(t, "/auth/register", body)
		err := h.Register(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_DuplicateBubblesUp(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string) (string, error) {
			return "", domain.ErrDuplicateEmail
		},
	}, zerolog.Nop())

	c, _ := newTestContext(t, "/auth/register",
		`{"email":"bob@example.com","password":"s3cretpass"}`)

	// The central error handler owns the status mapping; the handler just
	// propagates the typed failure.
	if err := h.Register(c); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail passthrough, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, error) {
			if email == "carol@example.com" && password == "goodpass1" {
				return "session-token", nil
			}
			return "", domain.ErrInvalidCredentials
		},
	}, zerolog.Nop())

	c, rec := newTestContext(t, "/auth/login",
		`{"email":"carol@example.com","password":"goodpass1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] != "session-token" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newTestContext(t, "/auth/login",
		`{"email":"carol@example.com","password":"wrong-one"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_ForgotPassword_AlwaysAccepts(t *testing.T) {
	calls := 0
	h := NewAuthHandler(&stubAuthService{
		requestResetFn: func(context.Context, string) error {
			calls++
			if calls == 2 {
				return domain.DependencyFailure("persist token", context.DeadlineExceeded)
			}
			return nil
		},
	}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, "/auth/forgot", `{"email":"any@example.com"}`)
		if err := h.ForgotPassword(c); err != nil {
			t.Fatalf("forgot must not propagate errors: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 service calls, got %d", calls)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		completeResetFn: func(_ context.Context, token, newPassword, confirm string) (string, error) {
			if token != "tok123" || newPassword != "newpass99" || confirm != "newpass99" {
				t.Fatalf("unexpected args: %s %s %s", token, newPassword, confirm)
			}
			return "fresh-session", nil
		},
	}, zerolog.Nop())

	c, rec := newTestContext(t, "/auth/reset",
		`{"token":"tok123","password":"newpass99","confirm_password":"newpass99"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] != "fresh-session" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBearerToken(t *testing.T) {
	e := echo.New()
	for header, want := range map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"bearer abc":     "abc",
		"Basic dXNlcg==": "",
		"Bearer":         "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		if got := bearerToken(c); got != want {
			t.Fatalf("header %q: expected %q, got %q", header, want, got)
		}
	}
}
