// Package account реализует выход пользователя из сервиса.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/water-subscription/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

// UserRepository определяет выключение учётной записи.
type UserRepository interface {
	DisableUser(ctx context.Context, userID string) error
}

// EventPublisher публикует события учётной записи.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// AccountService реализует жизненный цикл учётной записи.
type AccountService struct {
	repo      UserRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewAccountService создает новый экземпляр AccountService.
func NewAccountService(repo UserRepository, publisher EventPublisher, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Withdraw выключает учётную запись. Карты и подписка не затрагиваются.
func (s *AccountService) Withdraw(ctx context.Context, userID string) error {
	const op = "services.account.Withdraw"

	if err := s.repo.DisableUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info("account withdrawn", slog.String("op", op), sl.User(userID))

	event := models.Event{
		Type:       rabbitmq.RoutingAccountWithdrawn,
		UserUID:    userID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingAccountWithdrawn, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("op", op), sl.Err(err))
	}
	return nil
}
