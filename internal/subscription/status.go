// Package subscription реализует вычисление статуса подписки зала.
//
// Статус — чистая функция от сохраненных дат и плана зала и момента "сейчас",
// никакого состояния пакет не хранит.
package subscription

import (
	"time"

	"github.com/fit-control/fit-control/internal/models"
)

// Status статус подписки зала.
type Status string

// Возможные статусы подписки.
const (
	StatusTrial   Status = "trial"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Длительности подписок по типам планов, в днях.
const (
	monthlyDays  = 30
	yearlyDays   = 365
	lifetimeDays = 36500 // ~100 лет, сентинел "никогда"
)

// Compute возвращает статус подписки зала на момент now.
//
// Порядок проверок:
//  1. Действующий триал (is_trial и не истекший trial_end_date) дает trial;
//     истекший триал без назначенного плана — expired.
//  2. Назначенный план с не истекшим subscription_end_date дает active,
//     с истекшим — expired.
//  3. Все остальное — expired.
//
// Зал с is_trial=true, но без trial_end_date проваливается мимо первой
// ветки и получает expired.
func Compute(g *models.Gym, now time.Time) Status {
	if g.IsTrial && g.TrialEndDate != nil {
		if now.Before(*g.TrialEndDate) {
			return StatusTrial
		}
		if g.SubscriptionPlanID == nil {
			return StatusExpired
		}
	}

	if g.SubscriptionPlanID != nil {
		if g.SubscriptionEndDate != nil && now.Before(*g.SubscriptionEndDate) {
			return StatusActive
		}
		if g.SubscriptionEndDate != nil && !now.Before(*g.SubscriptionEndDate) {
			return StatusExpired
		}
	}

	return StatusExpired
}

// IsActive сообщает, действует ли подписка зала: статус trial или active.
func IsActive(g *models.Gym, now time.Time) bool {
	s := Compute(g, now)
	return s == StatusTrial || s == StatusActive
}

// EndDate вычисляет дату окончания подписки для типа плана planType,
// начавшейся в start. Неизвестный тип плана дает нулевое время.
func EndDate(planType string, start time.Time) time.Time {
	switch planType {
	case models.PlanMonthly:
		return start.AddDate(0, 0, monthlyDays)
	case models.PlanYearly:
		return start.AddDate(0, 0, yearlyDays)
	case models.PlanLifetime:
		return start.AddDate(0, 0, lifetimeDays)
	}
	return time.Time{}
}
