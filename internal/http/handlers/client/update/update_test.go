package update_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/http/handlers/client/update"
	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type serviceMock struct {
	updateFunc func(ctx context.Context, gymID, id int64, req models.DummyClient, isActive bool) (int, error)
}

func (m *serviceMock) Update(ctx context.Context, gymID, id int64, req models.DummyClient, isActive bool) (int, error) {
	return m.updateFunc(ctx, gymID, id, req, isActive)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdateClientHandler(t *testing.T) {
	validBody := `{"first_name": "Aziz", "last_name": "Karimov", "phone": "+998901234567", "is_active": false}`

	tests := []struct {
		name       string
		body       string
		updateFunc func(ctx context.Context, gymID, id int64, req models.DummyClient, isActive bool) (int, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "updates own client",
			body: validBody,
			updateFunc: func(_ context.Context, _, _ int64, _ models.DummyClient, isActive bool) (int, error) {
				assert.False(t, isActive)
				return 1, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"updated_count":1`,
		},
		{
			name: "client of another gym is not found",
			body: validBody,
			updateFunc: func(_ context.Context, _, _ int64, _ models.DummyClient, _ bool) (int, error) {
				return 0, repository.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"client not found"`,
		},
		{
			name:       "missing phone",
			body:       `{"first_name": "Aziz", "last_name": "Karimov"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := update.New(discardLogger(), &serviceMock{updateFunc: tt.updateFunc})

			r := chi.NewRouter()
			r.Put("/clients/{id}", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodPut, "/clients/11", strings.NewReader(tt.body))
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
