package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmolina/warden/core"
)

// fakeServer mimics the auth endpoints closely enough to exercise the
// client's cookie handling: login sets the session cookie, whoami requires it.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	me := &core.Identity{ID: "u-1", Email: "user@example.com", Role: core.RoleUser}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password != "secret1" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "signed-token", Path: "/", HttpOnly: true})
		json.NewEncoder(w).Encode(userEnvelope{Message: "Logged in successfully", User: me})
	})

	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != "signed-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized, no token"})
			return
		}
		json.NewEncoder(w).Encode(me)
	})

	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "none", Path: "/", MaxAge: 10})
		json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// Requirement: the session cookie set at login is carried on later requests
// without the client ever touching its value.
func TestClient_CookieCarriesSession(t *testing.T) {
	srv := fakeServer(t)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Me(t.Context()); err == nil {
		t.Fatal("Me before login should fail")
	}

	identity, err := c.Login(t.Context(), "user@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.ID != "u-1" {
		t.Fatalf("Login identity = %+v", identity)
	}

	got, err := c.Me(t.Context())
	if err != nil {
		t.Fatalf("Me after login: %v", err)
	}
	if got.Email != "user@example.com" {
		t.Fatalf("Me identity = %+v", got)
	}
}

// Requirement: the logout response's cookie rewrite takes effect in the jar.
func TestClient_LogoutDropsSession(t *testing.T) {
	srv := fakeServer(t)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Login(t.Context(), "user@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := c.Logout(t.Context()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := c.Me(t.Context()); err == nil {
		t.Fatal("Me after logout should fail")
	}
}

// Requirement: non-2xx responses surface as *APIError with the server's
// message; transport failures do not.
func TestClient_ErrorShapes(t *testing.T) {
	srv := fakeServer(t)
	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Login(t.Context(), "user@example.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Login error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Invalid credentials" {
		t.Fatalf("APIError = %+v", apiErr)
	}

	srv.Close()
	_, err = c.Me(t.Context())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure surfaced as *APIError: %v", err)
	}
}
