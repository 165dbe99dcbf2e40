package rabbitmq

// Ключи маршрутизации событий учётной записи.
const (
	RoutingSubscriptionChanged = "subscription.changed"
	RoutingCardRegistered      = "card.registered"
	RoutingAccountWithdrawn    = "account.withdrawn"
)

// QueueConfig очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAccountQueues возвращает очереди, в которые попадают события учётной записи.
func GetAccountQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.subscription_changed", RoutingKey: RoutingSubscriptionChanged},
		{QueueName: "notification.card_registered", RoutingKey: RoutingCardRegistered},
		{QueueName: "notification.account_withdrawn", RoutingKey: RoutingAccountWithdrawn},
	}
}
