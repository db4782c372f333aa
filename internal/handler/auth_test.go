package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"winx/internal/authz"
	"winx/internal/events"
	"winx/internal/models"
	"winx/internal/session"
	"winx/internal/storage"
)

func newAuthFixture(t *testing.T) *fixture {
	t.Helper()
	blobs := storage.NewMemory()
	sessions, err := session.New(context.Background(), blobs, authz.NewEmailAllowlist([]string{"admin@winx.com"}), session.Options{
		StartingGems: decimal.NewFromInt(5),
	}, nil)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}

	engine := gin.New()
	h := &AuthHandler{Sessions: sessions, Hub: events.NewHub(nil)}
	h.Register(engine)
	return &fixture{engine: engine, sessions: sessions}
}

func decodeUser(t *testing.T, resp apiResponse) models.User {
	t.Helper()
	raw, _ := json.Marshal(resp.Data)
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return user
}

func TestLoginLogoutFlow(t *testing.T) {
	f := newAuthFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me before login: status = %d, want 401", rec.Code)
	}

	rec, resp := f.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"alice@example.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeUser(t, resp)
	if user.Name != "alice" || user.IsAdmin {
		t.Fatalf("login user = %+v", user)
	}
	if !user.Gems.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("login gems = %s, want 5", user.Gems)
	}

	rec, resp = f.do(t, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me after login: status = %d", rec.Code)
	}
	if got := decodeUser(t, resp); got.Email != "alice@example.com" {
		t.Fatalf("me email = %q", got.Email)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: status = %d", rec.Code)
	}
	rec, _ = f.do(t, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status = %d, want 401", rec.Code)
	}
}

func TestLoginValidationStatus(t *testing.T) {
	f := newAuthFixture(t)

	cases := []struct {
		name, body string
	}{
		{"missing email", `{"password":"pw"}`},
		{"missing password", `{"email":"alice@example.com"}`},
		{"blank email", `{"email":"  ","password":"pw"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/login", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegisterNeverGrantsAdmin(t *testing.T) {
	f := newAuthFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/v1/auth/register", `{"name":"Root","email":"admin@winx.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status = %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeUser(t, resp)
	if user.IsAdmin {
		t.Fatalf("register granted admin")
	}
	if user.Name != "Root" {
		t.Fatalf("register name = %q, want caller-supplied name", user.Name)
	}

	rec, _ = f.do(t, http.MethodPost, "/api/v1/auth/register", `{"email":"x@y.z","password":"pw"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register without name: status = %d, want 400", rec.Code)
	}
}
