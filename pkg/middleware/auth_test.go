package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divvyhq/divvy/internal/auth"
)

func TestAuthAcceptsValidToken(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)
	token, err := m.Generate(auth.Principal{UserID: "u1", Role: auth.RoleUser})
	require.NoError(t, err)

	var got auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetPrincipal(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Auth(m)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, auth.RoleUser, got.Role)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)

	rec := httptest.NewRecorder()
	Auth(m)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	Auth(m)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		role   auth.Role
		status int
	}{
		{"admin passes", auth.RoleAdmin, http.StatusOK},
		{"user forbidden", auth.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			ctx := context.WithValue(req.Context(), PrincipalKey, auth.Principal{UserID: "u1", Role: tt.role})
			rec := httptest.NewRecorder()
			RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequireAdminWithoutPrincipal(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAdmin(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
