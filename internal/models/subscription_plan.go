package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы тарифных планов.
const (
	PlanMonthly  = "monthly"
	PlanYearly   = "yearly"
	PlanLifetime = "lifetime"
)

// SubscriptionPlan тарифный план подписки зала на платформу.
// План считается неизменяемым после того, как на него сослался хотя бы
// один зал: версионирования нет, правки делаются созданием нового плана.
type SubscriptionPlan struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	PlanType    string          `json:"plan_type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DummySubscriptionPlan используется для приёма данных плана из JSON-запроса.
// Цена приходит строкой, чтобы не терять точность при декодировании.
type DummySubscriptionPlan struct {
	Name        string `json:"name" validate:"required"`
	PlanType    string `json:"plan_type" validate:"required,oneof=monthly yearly lifetime"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description"`
}
