package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/session"
)

func seedUser(t *testing.T, app *testApp, email, password string, role models.Role) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := app.users.Create(context.Background(), models.User{Name: "Seed", Email: email, PasswordHash: string(hash), Role: role})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestRegisterCreatesUserRole(t *testing.T) {
	app := newTestApp(t)

	body := `{"name":"Ali","email":"Ali@Shop.test","phoneNumber":"0300","password":"secret1"}`
	w := app.do(t, http.MethodPost, "/api/auth/register", body, "")
	expectStatus(t, w, http.StatusCreated)

	user, err := app.users.FindByEmail(context.Background(), "ali@shop.test")
	if err != nil {
		t.Fatalf("expected stored user: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("expected user role, got %q", user.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("expected bcrypt hash of the password")
	}

	w = app.do(t, http.MethodPost, "/api/auth/register", body, "")
	expectStatus(t, w, http.StatusBadRequest)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", `{"name":"A","email":"bad","phoneNumber":"1","password":"123"}`, "")
	expectStatus(t, w, http.StatusBadRequest)
	if !strings.Contains(w.Body.String(), "Invalid email address") {
		t.Fatalf("expected email message, got %s", w.Body.String())
	}
}

func TestLoginIssuesSessionUsableOnAdminRoutes(t *testing.T) {
	app := newTestApp(t)
	seedUser(t, app, "admin@shop.test", "hunter22", models.RoleAdmin)

	w := app.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@shop.test","password":"hunter22"}`, "")
	expectStatus(t, w, http.StatusOK)

	cookie := sessionCookie(w)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}
	if cookie.MaxAge < 3500 || cookie.MaxAge > 3600 {
		t.Fatalf("expected cookie lifetime to follow the one hour session, got %d", cookie.MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	var resp struct {
		User struct {
			Email string      `json:"email"`
			Role  models.Role `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if resp.User.Email != "admin@shop.test" || resp.User.Role != models.RoleAdmin {
		t.Fatalf("unexpected session %+v", resp)
	}
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)
	seedUser(t, app, "user@shop.test", "hunter22", models.RoleUser)
	seedUser(t, app, "blocked@shop.test", "hunter22", models.RoleBlocked)

	w := app.do(t, http.MethodPost, "/api/auth/login", `{"email":"user@shop.test","password":"wrong"}`, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = app.do(t, http.MethodPost, "/api/auth/login", `{"email":"ghost@shop.test","password":"hunter22"}`, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = app.do(t, http.MethodPost, "/api/auth/login", `{"email":"blocked@shop.test","password":"hunter22"}`, "")
	expectStatus(t, w, http.StatusForbidden)
	if sessionCookie(w) != nil {
		t.Fatal("blocked account must not receive a session")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/logout", "", "")
	expectStatus(t, w, http.StatusOK)
	cookie := sessionCookie(w)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookie)
	}
}
