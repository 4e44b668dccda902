package assignplan_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/http/handlers/superuser/assignplan"
	"github.com/fit-control/fit-control/internal/models"
	gymservice "github.com/fit-control/fit-control/internal/services/gym"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type serviceMock struct {
	assignFunc func(ctx context.Context, gymID, planID int64, start *time.Time) (*models.Gym, error)
	gotStart   *time.Time
}

func (m *serviceMock) AssignPlan(ctx context.Context, gymID, planID int64, start *time.Time) (*models.Gym, error) {
	m.gotStart = start
	return m.assignFunc(ctx, gymID, planID, start)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAssignPlanHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		assignFunc func(ctx context.Context, gymID, planID int64, start *time.Time) (*models.Gym, error)
		wantStatus int
		wantStart  *time.Time
	}{
		{
			name: "success with explicit start date",
			url:  "/admin/gyms/3/plan",
			body: `{"plan_id": 2, "start_date": "15-03-2026"}`,
			assignFunc: func(_ context.Context, gymID, _ int64, _ *time.Time) (*models.Gym, error) {
				return &models.Gym{ID: gymID, IsActive: true}, nil
			},
			wantStatus: http.StatusOK,
			wantStart:  timePtr(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "success without start date",
			url:  "/admin/gyms/3/plan",
			body: `{"plan_id": 2}`,
			assignFunc: func(_ context.Context, gymID, _ int64, _ *time.Time) (*models.Gym, error) {
				return &models.Gym{ID: gymID, IsActive: true}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "plan not found",
			url:  "/admin/gyms/3/plan",
			body: `{"plan_id": 99}`,
			assignFunc: func(_ context.Context, _, _ int64, _ *time.Time) (*models.Gym, error) {
				return nil, repository.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "gym inactive",
			url:  "/admin/gyms/3/plan",
			body: `{"plan_id": 2}`,
			assignFunc: func(_ context.Context, _, _ int64, _ *time.Time) (*models.Gym, error) {
				return nil, gymservice.ErrGymInactive
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing plan id",
			url:        "/admin/gyms/3/plan",
			body:       `{}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed start date",
			url:        "/admin/gyms/3/plan",
			body:       `{"plan_id": 2, "start_date": "2026-03-15"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad gym id",
			url:        "/admin/gyms/abc/plan",
			body:       `{"plan_id": 2}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &serviceMock{assignFunc: tt.assignFunc}
			handler := assignplan.New(discardLogger(), mock)

			router := chi.NewRouter()
			router.Post("/admin/gyms/{id}/plan", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStart != nil {
				require.NotNil(t, mock.gotStart)
				assert.True(t, tt.wantStart.Equal(*mock.gotStart))
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
