package create_test

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

	"github.com/fit-control/fit-control/internal/http/handlers/client/create"
	"github.com/fit-control/fit-control/internal/http/middlewarectx"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type serviceMock struct {
	createFunc func(ctx context.Context, gymID int64, req models.DummyClient) (int64, error)
	gotGymID   int64
}

func (m *serviceMock) Create(ctx context.Context, gymID int64, req models.DummyClient) (int64, error) {
	m.gotGymID = gymID
	return m.createFunc(ctx, gymID, req)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateClientHandler(t *testing.T) {
	validBody := `{"first_name": "Aziz", "last_name": "Karimov", "phone": "+998901234567"}`

	tests := []struct {
		name       string
		body       string
		ctxGymID   int64
		createFunc func(ctx context.Context, gymID int64, req models.DummyClient) (int64, error)
		wantStatus int
		wantGymID  int64
	}{
		{
			name:     "gym admin creates client in own gym",
			body:     validBody,
			ctxGymID: 5,
			createFunc: func(_ context.Context, _ int64, _ models.DummyClient) (int64, error) {
				return 11, nil
			},
			wantStatus: http.StatusOK,
			wantGymID:  5,
		},
		{
			name:     "superuser must pass gym_id in body",
			body:     `{"gym_id": 9, "first_name": "Aziz", "last_name": "Karimov", "phone": "+998901234567"}`,
			ctxGymID: repository.AllGyms,
			createFunc: func(_ context.Context, _ int64, _ models.DummyClient) (int64, error) {
				return 12, nil
			},
			wantStatus: http.StatusOK,
			wantGymID:  9,
		},
		{
			name:       "superuser without gym_id",
			body:       validBody,
			ctxGymID:   repository.AllGyms,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:     "duplicate phone",
			body:     validBody,
			ctxGymID: 5,
			createFunc: func(_ context.Context, _ int64, _ models.DummyClient) (int64, error) {
				return 0, repository.ErrConflict
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing phone",
			body:       `{"first_name": "Aziz", "last_name": "Karimov"}`,
			ctxGymID:   5,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &serviceMock{createFunc: tt.createFunc}
			handler := create.New(discardLogger(), mock)

			req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), middlewarectx.GymID, tt.ctxGymID)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantGymID, mock.gotGymID)
			}
		})
	}
}
