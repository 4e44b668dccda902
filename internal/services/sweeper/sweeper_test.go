package sweeper_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/services/sweeper"
)

type mockRepo struct {
	gyms map[int64]*models.Gym
}

func (m *mockRepo) ListGyms(context.Context) ([]*models.Gym, error) {
	var result []*models.Gym
	for _, g := range m.gyms {
		result = append(result, g)
	}
	return result, nil
}

func (m *mockRepo) DeactivateGym(_ context.Context, gymID int64) error {
	m.gyms[gymID].IsActive = false
	return nil
}

type mockPublisher struct {
	events []any
}

func (m *mockPublisher) Publish(_ string, message any) error {
	m.events = append(m.events, message)
	return nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func timePtr(t time.Time) *time.Time { return &t }

func int64Ptr(v int64) *int64 { return &v }

func TestRun(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockRepo{gyms: map[int64]*models.Gym{
		1: {ID: 1, Name: "trial running", IsActive: true, IsTrial: true,
			TrialEndDate: timePtr(now.AddDate(0, 0, 7))},
		2: {ID: 2, Name: "trial expired", IsActive: true, IsTrial: true,
			TrialEndDate: timePtr(now.AddDate(0, 0, -1))},
		3: {ID: 3, Name: "subscription active", IsActive: true,
			SubscriptionPlanID:  int64Ptr(1),
			SubscriptionEndDate: timePtr(now.AddDate(0, 1, 0))},
		4: {ID: 4, Name: "already blocked", IsActive: false, IsTrial: true,
			TrialEndDate: timePtr(now.AddDate(0, 0, -10))},
	}}
	pub := &mockPublisher{}
	svc := sweeper.New(repo, pub, slog.New(discardHandler{}))

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Checked)
	assert.Equal(t, 1, res.Blocked)
	assert.False(t, repo.gyms[2].IsActive)
	assert.True(t, repo.gyms[1].IsActive)
	assert.True(t, repo.gyms[3].IsActive)
	require.Len(t, pub.events, 1)
	assert.Equal(t, sweeper.BlockedEvent{GymID: 2, GymName: "trial expired"}, pub.events[0])
}

func TestRun_Idempotent(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockRepo{gyms: map[int64]*models.Gym{
		1: {ID: 1, Name: "expired", IsActive: true, IsTrial: true,
			TrialEndDate: timePtr(now.AddDate(0, 0, -1))},
	}}
	svc := sweeper.New(repo, nil, slog.New(discardHandler{}))

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Blocked)

	second, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Checked)
	assert.Equal(t, 0, second.Blocked)
}

func TestRemind(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockRepo{gyms: map[int64]*models.Gym{
		1: {ID: 1, Name: "expiring soon", IsActive: true,
			SubscriptionPlanID:  int64Ptr(1),
			SubscriptionEndDate: timePtr(now.AddDate(0, 0, 2))},
		2: {ID: 2, Name: "plenty of time", IsActive: true,
			SubscriptionPlanID:  int64Ptr(1),
			SubscriptionEndDate: timePtr(now.AddDate(0, 1, 0))},
		3: {ID: 3, Name: "trial expiring", IsActive: true, IsTrial: true,
			TrialEndDate: timePtr(now.AddDate(0, 0, 1))},
		4: {ID: 4, Name: "blocked", IsActive: false,
			SubscriptionEndDate: timePtr(now.AddDate(0, 0, 1))},
	}}
	pub := &mockPublisher{}
	svc := sweeper.New(repo, pub, slog.New(discardHandler{}))

	sent, err := svc.Remind(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sent)
	assert.Len(t, pub.events, 2)
}

func TestRemind_NoPublisher(t *testing.T) {
	repo := &mockRepo{gyms: map[int64]*models.Gym{}}
	svc := sweeper.New(repo, nil, slog.New(discardHandler{}))

	sent, err := svc.Remind(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}
