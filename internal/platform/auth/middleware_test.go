package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockResolver struct {
	users map[uuid.UUID]*Identity
}

func (m *mockResolver) ResolveUser(_ context.Context, id uuid.UUID) (*Identity, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func newSessionTest(t *testing.T) (*mockResolver, echo.MiddlewareFunc, *echo.Echo) {
	t.Helper()
	resolver := &mockResolver{users: make(map[uuid.UUID]*Identity)}
	return resolver, SessionMiddleware(testSecret, resolver), echo.New()
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	_, mw, e := newSessionTest(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	_, mw, e := newSessionTest(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_UnknownUser(t *testing.T) {
	_, mw, e := newSessionTest(t)
	token, err := IssueToken(testSecret, uuid.New(), "ghost@x.com")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mwErr := mw(okHandler)(c)
	httpErr, ok := mwErr.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %v", mwErr)
	}
}

func TestSessionMiddleware_AttachesIdentity(t *testing.T) {
	resolver, mw, e := newSessionTest(t)
	userID := uuid.New()
	resolver.users[userID] = &Identity{ID: userID, Fullname: "Dr A", Email: "a@x.com", Role: "doctor"}

	token, err := IssueToken(testSecret, userID, "a@x.com")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		id := IdentityFromContext(c.Request().Context())
		if id == nil {
			t.Fatal("expected identity in request context")
		}
		if id.ID != userID || id.Role != "doctor" {
			t.Errorf("unexpected identity: %+v", id)
		}
		return c.String(http.StatusOK, "ok")
	}

	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestSetSessionCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	SetSessionCookie(c, "tok123", false)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != CookieName || ck.Value != "tok123" {
		t.Errorf("unexpected cookie %s=%s", ck.Name, ck.Value)
	}
	if !ck.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if ck.SameSite != http.SameSiteStrictMode {
		t.Error("expected SameSite=Strict")
	}
	if ck.MaxAge != int(TokenTTL.Seconds()) {
		t.Errorf("expected 7-day max-age, got %d", ck.MaxAge)
	}
}

func TestClearSessionCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ClearSessionCookie(c, false)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected negative max-age, got %d", cookies[0].MaxAge)
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	if id := IdentityFromContext(context.Background()); id != nil {
		t.Error("expected nil identity for plain context")
	}
}
