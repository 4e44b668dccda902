package pairing_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/services/pairing"
	"github.com/fit-control/fit-control/internal/storage/repository"
)

type mockRepo struct {
	tokens map[int64]*models.PairingToken
	byTok  map[string]*models.PairingInfo
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		tokens: make(map[int64]*models.PairingToken),
		byTok:  make(map[string]*models.PairingInfo),
	}
}

func (m *mockRepo) GetOrCreatePairingToken(_ context.Context, gymID int64, freshToken string) (*models.PairingToken, error) {
	if t, ok := m.tokens[gymID]; ok {
		return t, nil
	}
	t := &models.PairingToken{ID: int64(len(m.tokens) + 1), GymID: gymID, Token: freshToken}
	m.tokens[gymID] = t
	m.byTok[freshToken] = &models.PairingInfo{GymID: gymID, GymName: fmt.Sprintf("gym-%d", gymID)}
	return t, nil
}

func (m *mockRepo) FindGymByPairingToken(_ context.Context, token string) (*models.PairingInfo, error) {
	if info, ok := m.byTok[token]; ok {
		return info, nil
	}
	return nil, repository.ErrNotFound
}

type noopCache struct{}

func (noopCache) Get(string, any) (bool, error)        { return false, nil }
func (noopCache) Set(string, any, time.Duration) error { return nil }

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestGetOrCreateToken_Idempotent(t *testing.T) {
	svc := pairing.New(newMockRepo(), noopCache{}, "fitcontrol_bot", makeLogger())

	first, err := svc.GetOrCreateToken(context.Background(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)

	second, err := svc.GetOrCreateToken(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)
}

func TestPairingURL(t *testing.T) {
	svc := pairing.New(newMockRepo(), noopCache{}, "fitcontrol_bot", makeLogger())

	url, err := svc.PairingURL("abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/fitcontrol_bot?start=abc123", url)

	unconfigured := pairing.New(newMockRepo(), noopCache{}, "", makeLogger())
	_, err = unconfigured.PairingURL("abc123")
	assert.ErrorIs(t, err, pairing.ErrBotNotConfigured)
}

func TestVerify(t *testing.T) {
	repo := newMockRepo()
	svc := pairing.New(repo, noopCache{}, "fitcontrol_bot", makeLogger())

	issued, err := svc.GetOrCreateToken(context.Background(), 3)
	require.NoError(t, err)

	t.Run("issued token is valid", func(t *testing.T) {
		info, err := svc.Verify(context.Background(), issued.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(3), info.GymID)
		assert.Equal(t, "gym-3", info.GymName)
	})

	t.Run("random token is invalid", func(t *testing.T) {
		buf := make([]byte, 32)
		_, err := rand.Read(buf)
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), base64.RawURLEncoding.EncodeToString(buf))
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("empty token rejected before lookup", func(t *testing.T) {
		_, err := svc.Verify(context.Background(), "")
		assert.ErrorIs(t, err, pairing.ErrEmptyToken)
	})
}
