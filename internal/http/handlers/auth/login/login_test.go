package login_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/http/handlers/auth/login"
	"github.com/fit-control/fit-control/internal/services/auth"
)

type serviceMock struct {
	loginFunc func(ctx context.Context, username, password string) (string, string, error)
}

func (m *serviceMock) Login(ctx context.Context, username, password string) (string, string, error) {
	return m.loginFunc(ctx, username, password)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginFunc  func(ctx context.Context, username, password string) (string, string, error)
		wantStatus int
		wantToken  string
	}{
		{
			name: "success",
			body: `{"username": "admin1", "password": "secretpass"}`,
			loginFunc: func(_ context.Context, _, _ string) (string, string, error) {
				return "jwt-token", "gymadmin", nil
			},
			wantStatus: http.StatusOK,
			wantToken:  "jwt-token",
		},
		{
			name: "invalid credentials",
			body: `{"username": "admin1", "password": "wrongpass"}`,
			loginFunc: func(_ context.Context, _, _ string) (string, string, error) {
				return "", "", auth.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       `{"username": "admin1"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := login.New(discardLogger(), &serviceMock{loginFunc: tt.loginFunc})

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantToken != "" {
				assert.Contains(t, rec.Body.String(), tt.wantToken)
			}
		})
	}
}
