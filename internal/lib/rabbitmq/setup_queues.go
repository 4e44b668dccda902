package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации в exchange "notifications".
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации событий подписок.
const (
	RoutingKeyGymBlocked      = "gym.blocked"
	RoutingKeyPaymentReminder = "payment.reminder"
)

// GetNotificationQueues возвращает очереди, которые слушает notification-sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.gym_blocked", RoutingKey: RoutingKeyGymBlocked},
		{QueueName: "notification.payment_reminder", RoutingKey: RoutingKeyPaymentReminder},
	}
}
