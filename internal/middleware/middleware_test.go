package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanguard-backend/internal/auth"
	"cleanguard-backend/internal/config"
	"cleanguard-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[int]*models.User

func (f fakeUsers) Get(ctx context.Context, id int) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func newTestAuth(t *testing.T, users fakeUsers) (*AuthMiddleware, *auth.JWTManager) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	jm := auth.NewJWTManager(cfg)
	return NewAuthMiddleware(jm, users), jm
}

func bearer(t *testing.T, jm *auth.JWTManager, u *models.User) string {
	t.Helper()
	token, err := jm.GenerateToken(u)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticate(t *testing.T) {
	op := &models.User{ID: 1, Email: "op@example.com", Role: models.RoleOperator, IsActive: true}
	suspended := &models.User{ID: 2, Email: "gone@example.com", Role: models.RoleOperator}
	m, jm := newTestAuth(t, fakeUsers{1: op, 2: suspended})

	var seen string
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = Operator(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad format", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer abc", http.StatusUnauthorized},
		{"suspended", bearer(t, jm, suspended), http.StatusForbidden},
		{"ok", bearer(t, jm, op), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, "op@example.com", seen)
}

func TestRequireAdmin(t *testing.T) {
	admin := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	op := &models.User{ID: 2, Email: "op@example.com", Role: models.RoleOperator, IsActive: true}
	m, jm := newTestAuth(t, fakeUsers{1: admin, 2: op})

	h := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/backups", nil)
	req.Header.Set("Authorization", bearer(t, jm, op))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set("Authorization", bearer(t, jm, admin))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperatorDefaultsToSystem(t *testing.T) {
	assert.Equal(t, "system", Operator(context.Background()))
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
}

func TestRequestLoggingSetsID(t *testing.T) {
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	var got string
	r.HandleFunc("/api/employees/{empNo}", func(w http.ResponseWriter, req *http.Request) {
		got = routeTemplate(req)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/employees/P001", nil))
	assert.Equal(t, "/api/employees/{empNo}", got)
}
