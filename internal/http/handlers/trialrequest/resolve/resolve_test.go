package resolve_test

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

	"github.com/fit-control/fit-control/internal/http/handlers/trialrequest/resolve"
	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type serviceMock struct {
	approveFunc func(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error)
	rejectFunc  func(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error)
}

func (m *serviceMock) ApproveTrialRequest(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error) {
	return m.approveFunc(ctx, id, adminNotes)
}

func (m *serviceMock) RejectTrialRequest(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error) {
	return m.rejectFunc(ctx, id, adminNotes)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveTrialRequestHandler(t *testing.T) {
	gymID := int64(7)

	tests := []struct {
		name        string
		url         string
		body        string
		approveFunc func(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error)
		rejectFunc  func(ctx context.Context, id int64, adminNotes string) (*models.TrialRequest, error)
		wantStatus  int
		wantBody    string
	}{
		{
			name: "approves pending request",
			url:  "/admin/trial-requests/1/resolve",
			body: `{"action": "approve", "admin_notes": "ok"}`,
			approveFunc: func(_ context.Context, id int64, _ string) (*models.TrialRequest, error) {
				return &models.TrialRequest{ID: id, Status: models.TrialRequestApproved, GymID: &gymID}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"approved"`,
		},
		{
			name: "rejects pending request",
			url:  "/admin/trial-requests/1/resolve",
			body: `{"action": "reject", "admin_notes": "spam"}`,
			rejectFunc: func(_ context.Context, id int64, _ string) (*models.TrialRequest, error) {
				return &models.TrialRequest{ID: id, Status: models.TrialRequestRejected}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"rejected"`,
		},
		{
			name: "already resolved request is a conflict",
			url:  "/admin/trial-requests/1/resolve",
			body: `{"action": "approve"}`,
			approveFunc: func(_ context.Context, _ int64, _ string) (*models.TrialRequest, error) {
				return nil, repository.ErrConflict
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"trial request already resolved"`,
		},
		{
			name: "unknown request is not found",
			url:  "/admin/trial-requests/99/resolve",
			body: `{"action": "reject"}`,
			rejectFunc: func(_ context.Context, _ int64, _ string) (*models.TrialRequest, error) {
				return nil, repository.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"trial request not found"`,
		},
		{
			name:       "unknown action fails validation",
			url:        "/admin/trial-requests/1/resolve",
			body:       `{"action": "postpone"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "bad id",
			url:        "/admin/trial-requests/abc/resolve",
			body:       `{"action": "approve"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := resolve.New(discardLogger(), &serviceMock{
				approveFunc: tt.approveFunc,
				rejectFunc:  tt.rejectFunc,
			})

			r := chi.NewRouter()
			r.Post("/admin/trial-requests/{id}/resolve", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
