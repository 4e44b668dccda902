package handshake_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/bot/api"
	"github.com/fit-control/fit-control/internal/bot/handshake"
	"github.com/fit-control/fit-control/internal/bot/session"
	"github.com/fit-control/fit-control/internal/models"
)

type backendMock struct {
	verifyFunc func(ctx context.Context, token string) (*models.PairingInfo, error)
	createFunc func(ctx context.Context, req models.DummyClient) (int64, error)
	created    []models.DummyClient
}

func (m *backendMock) VerifyToken(ctx context.Context, token string) (*models.PairingInfo, error) {
	return m.verifyFunc(ctx, token)
}

func (m *backendMock) CreateClient(ctx context.Context, req models.DummyClient) (int64, error) {
	m.created = append(m.created, req)
	return m.createFunc(ctx, req)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validBackend() *backendMock {
	return &backendMock{
		verifyFunc: func(_ context.Context, token string) (*models.PairingInfo, error) {
			if token == "goodtoken" {
				return &models.PairingInfo{GymID: 7, GymName: "Olimp"}, nil
			}
			return nil, api.ErrTokenInvalid
		},
		createFunc: func(_ context.Context, _ models.DummyClient) (int64, error) {
			return 42, nil
		},
	}
}

func TestHandshakeFullFlow(t *testing.T) {
	backend := validBackend()
	store := session.NewStore()
	h := handshake.New(backend, store, discardLogger())
	ctx := context.Background()

	reply := h.Handle(ctx, 100, "aziz_k", "/start goodtoken")
	assert.Contains(t, reply, "Olimp")
	assert.Equal(t, session.StateAwaitingClientInfo, store.Get(100).State)

	reply = h.Handle(ctx, 100, "aziz_k", "Aziz Karimov +998901234567")
	assert.Contains(t, reply, "Aziz")
	assert.Contains(t, reply, "Karimov")
	assert.Contains(t, reply, "+998901234567")
	assert.Equal(t, session.StateAwaitingConfirmation, store.Get(100).State)

	reply = h.Handle(ctx, 100, "aziz_k", "ha")
	assert.Contains(t, reply, "muvaffaqiyatli")
	assert.Equal(t, session.StateIdle, store.Get(100).State)

	require.Len(t, backend.created, 1)
	created := backend.created[0]
	assert.Equal(t, int64(7), created.GymID)
	assert.Equal(t, "Aziz", created.FirstName)
	assert.Equal(t, "Karimov", created.LastName)
	assert.Equal(t, "+998901234567", created.Phone)
	require.NotNil(t, created.TelegramID)
	assert.Equal(t, int64(100), *created.TelegramID)
	require.NotNil(t, created.TelegramUsername)
	assert.Equal(t, "aziz_k", *created.TelegramUsername)
}

func TestHandshakeClientInfoValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantState session.State
	}{
		{"too few tokens", "Aziz", session.StateAwaitingClientInfo},
		{"missing phone", "Aziz Karimov Toshkent", session.StateAwaitingClientInfo},
		{"short phone", "Aziz Karimov +99890123", session.StateAwaitingClientInfo},
		{"wrong country code", "Aziz Karimov +7901234567", session.StateAwaitingClientInfo},
		{"valid", "Aziz Karimov +998901234567", session.StateAwaitingConfirmation},
		{"multi word last name", "Aziz Abdulla Karimov +998901234567", session.StateAwaitingConfirmation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore()
			h := handshake.New(validBackend(), store, discardLogger())
			ctx := context.Background()

			h.Handle(ctx, 1, "", "/start goodtoken")
			reply := h.Handle(ctx, 1, "", tt.input)

			assert.Equal(t, tt.wantState, store.Get(1).State)
			if tt.wantState == session.StateAwaitingClientInfo {
				assert.Contains(t, reply, "Misol")
			}
		})
	}
}

func TestHandshakeMultiWordLastName(t *testing.T) {
	backend := validBackend()
	store := session.NewStore()
	h := handshake.New(backend, store, discardLogger())
	ctx := context.Background()

	h.Handle(ctx, 1, "", "/start goodtoken")
	h.Handle(ctx, 1, "", "Aziz Abdulla Karimov +998901234567")
	h.Handle(ctx, 1, "", "ha")

	require.Len(t, backend.created, 1)
	assert.Equal(t, "Aziz", backend.created[0].FirstName)
	assert.Equal(t, "Abdulla Karimov", backend.created[0].LastName)
}

func TestHandshakeConfirmationVocabulary(t *testing.T) {
	affirmatives := []string{"ha", "Xa", "YES", "da", "ok"}
	for _, answer := range affirmatives {
		t.Run("affirmative "+answer, func(t *testing.T) {
			backend := validBackend()
			store := session.NewStore()
			h := handshake.New(backend, store, discardLogger())
			ctx := context.Background()

			h.Handle(ctx, 1, "", "/start goodtoken")
			h.Handle(ctx, 1, "", "Aziz Karimov +998901234567")
			reply := h.Handle(ctx, 1, "", answer)

			assert.Contains(t, reply, "muvaffaqiyatli")
			assert.Len(t, backend.created, 1)
		})
	}

	negatives := []string{"yo'q", "yoq", "no", "Yo"}
	for _, answer := range negatives {
		t.Run("negative "+answer, func(t *testing.T) {
			backend := validBackend()
			store := session.NewStore()
			h := handshake.New(backend, store, discardLogger())
			ctx := context.Background()

			h.Handle(ctx, 1, "", "/start goodtoken")
			h.Handle(ctx, 1, "", "Aziz Karimov +998901234567")
			reply := h.Handle(ctx, 1, "", answer)

			assert.Contains(t, reply, "Bekor")
			assert.Equal(t, session.StateIdle, store.Get(1).State)
			assert.Empty(t, backend.created)
		})
	}

	t.Run("unrecognized answer re-prompts", func(t *testing.T) {
		store := session.NewStore()
		h := handshake.New(validBackend(), store, discardLogger())
		ctx := context.Background()

		h.Handle(ctx, 1, "", "/start goodtoken")
		h.Handle(ctx, 1, "", "Aziz Karimov +998901234567")
		reply := h.Handle(ctx, 1, "", "balki")

		assert.Contains(t, reply, "ha yoki yo'q")
		assert.Equal(t, session.StateAwaitingConfirmation, store.Get(1).State)
	})
}

func TestHandshakeCreateFailureKeepsSession(t *testing.T) {
	backend := validBackend()
	backend.createFunc = func(_ context.Context, _ models.DummyClient) (int64, error) {
		return 0, errors.New("api unavailable")
	}
	store := session.NewStore()
	h := handshake.New(backend, store, discardLogger())
	ctx := context.Background()

	h.Handle(ctx, 1, "", "/start goodtoken")
	h.Handle(ctx, 1, "", "Aziz Karimov +998901234567")
	reply := h.Handle(ctx, 1, "", "ha")

	assert.Contains(t, reply, "Xatolik")
	assert.Equal(t, session.StateAwaitingConfirmation, store.Get(1).State)

	backend.createFunc = func(_ context.Context, _ models.DummyClient) (int64, error) {
		return 42, nil
	}
	reply = h.Handle(ctx, 1, "", "ha")
	assert.Contains(t, reply, "muvaffaqiyatli")
	assert.Equal(t, session.StateIdle, store.Get(1).State)
}

func TestHandshakePhoneTakenResetsSession(t *testing.T) {
	backend := validBackend()
	backend.createFunc = func(_ context.Context, _ models.DummyClient) (int64, error) {
		return 0, api.ErrPhoneTaken
	}
	store := session.NewStore()
	h := handshake.New(backend, store, discardLogger())
	ctx := context.Background()

	h.Handle(ctx, 1, "", "/start goodtoken")
	h.Handle(ctx, 1, "", "Aziz Karimov +998901234567")
	reply := h.Handle(ctx, 1, "", "ha")

	assert.Contains(t, reply, "allaqachon")
	assert.Equal(t, session.StateIdle, store.Get(1).State)
}

func TestHandshakeStartWithoutToken(t *testing.T) {
	store := session.NewStore()
	h := handshake.New(validBackend(), store, discardLogger())

	reply := h.Handle(context.Background(), 1, "", "/start")
	assert.Contains(t, reply, "xush kelibsiz")
	assert.Equal(t, session.StateIdle, store.Get(1).State)
}

func TestHandshakeInvalidToken(t *testing.T) {
	store := session.NewStore()
	h := handshake.New(validBackend(), store, discardLogger())

	reply := h.Handle(context.Background(), 1, "", "/start badtoken")
	assert.Contains(t, reply, "noto'g'ri")
	assert.Equal(t, session.StateIdle, store.Get(1).State)
}

func TestHandshakeCancel(t *testing.T) {
	store := session.NewStore()
	h := handshake.New(validBackend(), store, discardLogger())
	ctx := context.Background()

	h.Handle(ctx, 1, "", "/start goodtoken")
	reply := h.Handle(ctx, 1, "", "/cancel")

	assert.Contains(t, reply, "Bekor")
	assert.Equal(t, session.StateIdle, store.Get(1).State)
}

func TestHandshakePanicResetsSession(t *testing.T) {
	backend := validBackend()
	backend.createFunc = func(_ context.Context, _ models.DummyClient) (int64, error) {
		panic("boom")
	}
	store := session.NewStore()
	h := handshake.New(backend, store, discardLogger())
	ctx := context.Background()

	h.Handle(ctx, 1, "", "/start goodtoken")
	h.Handle(ctx, 1, "", "Aziz Karimov +998901234567")
	reply := h.Handle(ctx, 1, "", "ha")

	assert.Contains(t, reply, "Xatolik")
	assert.Equal(t, session.StateIdle, store.Get(1).State)
}
