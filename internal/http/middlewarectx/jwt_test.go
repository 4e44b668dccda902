package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	jwtlib "github.com/fit-control/fit-control/internal/lib/jwt"
)

type authServiceMock struct {
	claims *jwtlib.CustomClaims
	err    error
}

func (m *authServiceMock) ValidateToken(_ context.Context, _ string) (*jwtlib.CustomClaims, error) {
	return m.claims, m.err
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		claims         *jwtlib.CustomClaims
		err            error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer token",
			err:            errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			claims: &jwtlib.CustomClaims{
				Username: "admin1",
				Role:     jwtlib.RoleGymAdmin,
				GymID:    42,
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				assert.Equal(t, "admin1", r.Context().Value(middlewarectx.User))
				assert.Equal(t, jwtlib.RoleGymAdmin, r.Context().Value(middlewarectx.Role))
				gymID, ok := middlewarectx.GymIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, int64(42), gymID)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.JWTMiddleware(&authServiceMock{claims: tt.claims, err: tt.err}, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestRequireSuperuser(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := middlewarectx.RequireSuperuser(newNoopLogger())(nextHandler)

	t.Run("superuser passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.Role, jwtlib.RoleSuperuser)
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("gym admin forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.Role, jwtlib.RoleGymAdmin)
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
