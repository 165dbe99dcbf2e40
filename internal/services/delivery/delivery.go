// Package delivery фиксирует ожидаемую дату доставки воды.
package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
)

// UserRepository определяет однократную запись даты доставки.
type UserRepository interface {
	SetDeliveredAtOnce(ctx context.Context, userID string, deliveredAt time.Time) (bool, error)
}

// DeliveryService записывает дату доставки.
type DeliveryService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewDeliveryService создает новый экземпляр DeliveryService.
func NewDeliveryService(repo UserRepository, log *slog.Logger) *DeliveryService {
	return &DeliveryService{
		repo: repo,
		log:  log,
	}
}

// RecordEstimatedDelivery записывает дату, только если она ещё не задана.
// Повторный вызов не меняет дату и не считается ошибкой; recorded сообщает,
// была ли дата записана этим вызовом.
func (s *DeliveryService) RecordEstimatedDelivery(ctx context.Context, userID string, deliveredAt time.Time) (bool, error) {
	const op = "services.delivery.RecordEstimatedDelivery"

	recorded, err := s.repo.SetDeliveredAtOnce(ctx, userID, deliveredAt.UTC())
	if err != nil {
		return false, err
	}
	if recorded {
		s.log.Info("delivery date recorded", slog.String("op", op), sl.User(userID),
			slog.Time("delivered_at", deliveredAt))
	} else {
		s.log.Debug("delivery date already set", slog.String("op", op), sl.User(userID))
	}
	return recorded, nil
}
