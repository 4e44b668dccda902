package verify_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/http/handlers/pairing/verify"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/services/pairing"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type serviceMock struct {
	verifyFunc func(ctx context.Context, token string) (*models.PairingInfo, error)
}

func (m *serviceMock) Verify(ctx context.Context, token string) (*models.PairingInfo, error) {
	return m.verifyFunc(ctx, token)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVerifyHandler(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		verifyFunc func(ctx context.Context, token string) (*models.PairingInfo, error)
		wantStatus int
		wantValid  *bool
	}{
		{
			name:  "valid token",
			token: "sometoken",
			verifyFunc: func(_ context.Context, _ string) (*models.PairingInfo, error) {
				return &models.PairingInfo{GymID: 7, GymName: "Olimp"}, nil
			},
			wantStatus: http.StatusOK,
			wantValid:  boolPtr(true),
		},
		{
			name:  "unknown token",
			token: "unknown",
			verifyFunc: func(_ context.Context, _ string) (*models.PairingInfo, error) {
				return nil, repository.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
			wantValid:  boolPtr(false),
		},
		{
			name:  "empty token",
			token: "",
			verifyFunc: func(_ context.Context, _ string) (*models.PairingInfo, error) {
				return nil, pairing.ErrEmptyToken
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := verify.New(discardLogger(), &serviceMock{verifyFunc: tt.verifyFunc})

			r := chi.NewRouter()
			r.Get("/verify/{token}", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/verify/"+tt.token, nil)
			if tt.token == "" {
				req = httptest.NewRequest(http.MethodGet, "/verify/%20", nil)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantValid != nil {
				var body struct {
					Data struct {
						Valid bool `json:"valid"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, *tt.wantValid, body.Data.Valid)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
