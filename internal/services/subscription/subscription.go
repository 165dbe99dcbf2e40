// Package subscription меняет параметры подписки пользователя на воду
// с учётом окна блокировки перед ожидаемой доставкой.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

// UserRepository определяет запись параметров подписки.
type UserRepository interface {
	// ChangeWaterOptions обновляет подписку, если дата доставки не раньше cutoff.
	ChangeWaterOptions(ctx context.Context, userID string, opts models.WaterOptions, cutoff time.Time) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

// Catalog проверяет существование товара.
type Catalog interface {
	WaterInfo(ctx context.Context, waterID int64) (*models.Water, error)
}

// EventPublisher публикует события учётной записи.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// SubscriptionService реализует смену параметров подписки.
type SubscriptionService struct {
	repo      UserRepository
	catalog   Catalog
	publisher EventPublisher
	lockout   time.Duration
	log       *slog.Logger
	now       func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
// lockout задаёт окно перед ожидаемой доставкой, в которое подписку менять нельзя.
func NewSubscriptionService(repo UserRepository, catalog Catalog, publisher EventPublisher,
	lockout time.Duration, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		lockout:   lockout,
		log:       log,
		now:       time.Now,
	}
}

// ChangeWaterOptions меняет товар, количество и цикл доставки.
//
// Для несуществующего товара возвращается apperr.ErrInvalidReference. Если до ожидаемой доставки
// осталось меньше окна блокировки, возвращается apperr.ErrOperationLocked. Для несуществующего
// пользователя ничего не меняется и ошибка не возвращается.
func (s *SubscriptionService) ChangeWaterOptions(ctx context.Context, userID string, opts models.WaterOptions) error {
	const op = "services.subscription.ChangeWaterOptions"
	log := s.log.With(slog.String("op", op), sl.User(userID))

	if _, err := s.catalog.WaterInfo(ctx, opts.WaterID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.InvalidReference(op, "water does not exist")
		}
		return err
	}

	cutoff := s.now().Add(s.lockout)
	changed, err := s.repo.ChangeWaterOptions(ctx, userID, opts, cutoff)
	if err != nil {
		return err
	}
	if !changed {
		exists, err := s.repo.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Locked(op, "water options cannot be changed before delivery")
		}
		log.Warn("user not found, water options unchanged")
		return nil
	}

	log.Info("water options changed", slog.Int64("water_id", opts.WaterID))

	event := models.Event{
		Type:       rabbitmq.RoutingSubscriptionChanged,
		UserUID:    userID,
		OccurredAt: s.now().UTC(),
		Payload:    opts,
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingSubscriptionChanged, event); err != nil {
		log.Warn("failed to publish event", sl.Err(err))
	}
	return nil
}
