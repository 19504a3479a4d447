package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dawam/internal/auth"
)

const testSecret = "test-secret"

func authedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	handler := Auth(testSecret)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok || user.Username != "admin" {
			t.Fatalf("unexpected user in context: %+v ok=%v", user, ok)
		}
	})))
	return handler, &called
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Username: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}

func TestAuthBearerToken(t *testing.T) {
	handler, called := authedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !*called || rec.Code != http.StatusOK {
		t.Fatalf("expected authorized pass-through, got %d", rec.Code)
	}
}

func TestAuthSessionCookie(t *testing.T) {
	handler, called := authedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: validToken(t)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !*called || rec.Code != http.StatusOK {
		t.Fatalf("expected authorized pass-through, got %d", rec.Code)
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler, called := authedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if *called {
		t.Fatal("handler must not run without a user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	handler, called := authedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if *called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
}
