package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/morkath/clanhall/internal/auth"
	"github.com/morkath/clanhall/internal/database"
	"github.com/morkath/clanhall/internal/store"
)

func setupAuth(t *testing.T) (*store.SessionStore, *store.UserStore, string) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	sessions := store.NewSessionStore(db)

	user, err := users.Create("leader@clanhall.test", "Thrain", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sess, err := sessions.Create(user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sessions, users, sess.Token
}

func TestRequireAuthValidSession(t *testing.T) {
	sessions, users, token := setupAuth(t)

	var sawName string
	handler := RequireAuth(sessions, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawName = auth.UserName(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if sawName != "Thrain" {
		t.Errorf("handler saw user %q, want Thrain", sawName)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	sessions, users, _ := setupAuth(t)
	handler := RequireAuth(sessions, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty token", &http.Cookie{Name: SessionCookieName, Value: ""}},
		{"unknown token", &http.Cookie{Name: SessionCookieName, Value: "bogus"}},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		if tt.cookie != nil {
			req.AddCookie(tt.cookie)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tt.name, rec.Code)
		}
	}
}
