package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: 7, Username: "alice", Role: role}, ttl)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return body.Error
}

func TestAuthenticateSetsUser(t *testing.T) {
	token := signedToken(t, auth.RoleUser, time.Hour)

	called := false
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.UserID != 7 || user.Username != "alice" || user.Role != auth.RoleUser {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !called {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	expired := signedToken(t, auth.RoleUser, -time.Minute)
	cases := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized, msg: "Access token required"},
		{name: "no token part", header: "Bearer", status: http.StatusUnauthorized, msg: "Access token required"},
		{name: "garbage", header: "Bearer not-a-jwt", status: http.StatusForbidden, msg: "Invalid or expired token"},
		{name: "expired", header: "Bearer " + expired, status: http.StatusForbidden, msg: "Invalid or expired token"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not run")
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if got := errorMessage(t, rec); got != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, got)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		status int
	}{
		{name: "admin allowed", role: auth.RoleAdmin, status: http.StatusNoContent},
		{name: "user denied", role: auth.RoleUser, status: http.StatusForbidden},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := Authenticate(testSecret)(RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tc.role, time.Hour))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.status == http.StatusForbidden && errorMessage(t, rec) != "Access denied: insufficient permissions" {
				t.Fatalf("unexpected message: %s", rec.Body.String())
			}
		})
	}
}
