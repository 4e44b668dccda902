package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fit-control/fit-control/internal/models"
	"github.com/fit-control/fit-control/internal/subscription"
)

func timePtr(t time.Time) *time.Time { return &t }

func int64Ptr(v int64) *int64 { return &v }

func TestCompute(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		gym  models.Gym
		want subscription.Status
	}{
		{
			name: "trial in progress",
			gym: models.Gym{
				IsTrial:      true,
				TrialEndDate: timePtr(now.AddDate(0, 0, 7)),
			},
			want: subscription.StatusTrial,
		},
		{
			name: "trial expired without plan",
			gym: models.Gym{
				IsTrial:      true,
				TrialEndDate: timePtr(now.AddDate(0, 0, -1)),
			},
			want: subscription.StatusExpired,
		},
		{
			name: "trial expired but plan active",
			gym: models.Gym{
				IsTrial:             true,
				TrialEndDate:        timePtr(now.AddDate(0, 0, -1)),
				SubscriptionPlanID:  int64Ptr(1),
				SubscriptionEndDate: timePtr(now.AddDate(0, 1, 0)),
			},
			want: subscription.StatusActive,
		},
		{
			name: "trial flag set but no trial end date",
			gym: models.Gym{
				IsTrial: true,
			},
			want: subscription.StatusExpired,
		},
		{
			name: "active subscription",
			gym: models.Gym{
				SubscriptionPlanID:  int64Ptr(1),
				SubscriptionEndDate: timePtr(now.AddDate(0, 0, 10)),
			},
			want: subscription.StatusActive,
		},
		{
			name: "subscription expired exactly now",
			gym: models.Gym{
				SubscriptionPlanID:  int64Ptr(1),
				SubscriptionEndDate: timePtr(now),
			},
			want: subscription.StatusExpired,
		},
		{
			name: "plan assigned without end date",
			gym: models.Gym{
				SubscriptionPlanID: int64Ptr(1),
			},
			want: subscription.StatusExpired,
		},
		{
			name: "no trial and no plan",
			gym:  models.Gym{},
			want: subscription.StatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subscription.Compute(&tt.gym, now)
			assert.Equal(t, tt.want, got)

			wantActive := got == subscription.StatusTrial || got == subscription.StatusActive
			assert.Equal(t, wantActive, subscription.IsActive(&tt.gym, now))
		})
	}
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start.AddDate(0, 0, 30), subscription.EndDate(models.PlanMonthly, start))
	assert.Equal(t, start.AddDate(0, 0, 365), subscription.EndDate(models.PlanYearly, start))
	assert.True(t, subscription.EndDate(models.PlanLifetime, start).Sub(start) >= 36500*24*time.Hour)
	assert.True(t, subscription.EndDate("weekly", start).IsZero())
}
