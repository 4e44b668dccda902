package remove_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/http/handlers/client/remove"
	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type serviceMock struct {
	removeFunc func(ctx context.Context, gymID, id int64) (int, error)
}

func (m *serviceMock) Remove(ctx context.Context, gymID, id int64) (int, error) {
	return m.removeFunc(ctx, gymID, id)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRemoveClientHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		removeFunc func(ctx context.Context, gymID, id int64) (int, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "removes own client",
			url:  "/clients/11",
			removeFunc: func(_ context.Context, _, _ int64) (int, error) {
				return 1, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"removed_count":1`,
		},
		{
			name: "client of another gym is not found",
			url:  "/clients/55",
			removeFunc: func(_ context.Context, _, _ int64) (int, error) {
				return 0, repository.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"client not found"`,
		},
		{
			name:       "bad id",
			url:        "/clients/abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := remove.New(discardLogger(), &serviceMock{removeFunc: tt.removeFunc})

			r := chi.NewRouter()
			r.Delete("/clients/{id}", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.GymID, int64(5))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req.WithContext(ctx))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
