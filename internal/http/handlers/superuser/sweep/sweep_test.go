package sweep_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/http/handlers/superuser/sweep"
	"github.com/fit-control/fit-control/internal/services/sweeper"
)

type serviceMock struct {
	runFunc func(ctx context.Context) (sweeper.Result, error)
}

func (m *serviceMock) Run(ctx context.Context) (sweeper.Result, error) {
	return m.runFunc(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweepHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := sweep.New(discardLogger(), &serviceMock{
			runFunc: func(_ context.Context) (sweeper.Result, error) {
				return sweeper.Result{Checked: 10, Blocked: 2}, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/admin/sweep", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"checked":10`)
		assert.Contains(t, rec.Body.String(), `"blocked":2`)
	})

	t.Run("sweep error", func(t *testing.T) {
		handler := sweep.New(discardLogger(), &serviceMock{
			runFunc: func(_ context.Context) (sweeper.Result, error) {
				return sweeper.Result{}, errors.New("storage unavailable")
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/admin/sweep", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
