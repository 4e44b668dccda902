// Package metrics определяет счетчики Prometheus платформы.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Метрики регистрации
	GymRegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcontrol_gym_registrations_total",
			Help: "Total number of registered gyms",
		},
	)
	BotRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcontrol_bot_registrations_total",
			Help: "Total number of client registrations through the bot",
		},
		[]string{"result"},
	)

	// Метрики подписок
	SweepCheckedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcontrol_sweep_checked_total",
			Help: "Total number of gyms checked by the subscription sweep",
		},
	)
	SweepBlockedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcontrol_sweep_blocked_total",
			Help: "Total number of gyms blocked by the subscription sweep",
		},
	)
)

func init() {
	prometheus.MustRegister(
		GymRegistrationsTotal,
		BotRegistrationsTotal,
		SweepCheckedTotal,
		SweepBlockedTotal,
	)
}
