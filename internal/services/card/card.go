// Package card реализует реестр платёжных карт пользователя: постраничный
// список, регистрацию с назначением основной карты и мягкое удаление.
package card

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

// CardRepository определяет методы хранилища карт.
type CardRepository interface {
	ListCards(ctx context.Context, userID string, limit, offset int) ([]*models.PaymentCard, error)
	CountCards(ctx context.Context, userID string) (int, error)
	// CreateCard сохраняет карту; первая включённая карта пользователя становится основной.
	CreateCard(ctx context.Context, card models.PaymentCard) (*models.PaymentCard, error)
	DisableCard(ctx context.Context, userID string, cardID int64) (bool, error)
}

// Hasher хеширует секрет карты.
type Hasher func(secret string) (string, error)

// EventPublisher публикует события учётной записи.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// CardService реализует операции с картами.
type CardService struct {
	repo      CardRepository
	hash      Hasher
	publisher EventPublisher
	log       *slog.Logger
}

// NewCardService создает новый экземпляр CardService.
func NewCardService(repo CardRepository, hash Hasher, publisher EventPublisher, log *slog.Logger) *CardService {
	return &CardService{
		repo:      repo,
		hash:      hash,
		publisher: publisher,
		log:       log,
	}
}

// List возвращает страницу включённых карт (новые первыми) и общее их число.
func (s *CardService) List(ctx context.Context, userID string, page models.CardPage) (*models.CardList, error) {
	const op = "services.card.List"
	if page.Page < 0 || page.Amount <= 0 {
		return nil, fmt.Errorf("%s: invalid page %d/%d", op, page.Page, page.Amount)
	}

	cards, err := s.repo.ListCards(ctx, userID, page.Amount, page.Page*page.Amount)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []*models.PaymentCard{}
	}
	return &models.CardList{Cards: cards, Count: count}, nil
}

// Register сохраняет новую карту. Секрет карты хранится только в виде хеша.
func (s *CardService) Register(ctx context.Context, userID string, req models.DummyCard) (*models.PaymentCard, error) {
	const op = "services.card.Register"

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	card, err := s.repo.CreateCard(ctx, models.PaymentCard{
		UserID:   userID,
		Number:   req.Number,
		Password: hashed,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
		Name:     req.Name,
		Phone:    req.Phone,
		Birth:    req.Birth,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("card registered", slog.String("op", op), sl.User(userID),
		slog.Int64("card_id", card.ID), slog.Bool("main", card.IsMainPayment))

	event := models.Event{
		Type:       rabbitmq.RoutingCardRegistered,
		UserUID:    userID,
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{"card_id": card.ID, "is_main_payment": card.IsMainPayment},
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingCardRegistered, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("op", op), sl.Err(err))
	}
	return card, nil
}

// Remove выключает карту пользователя. Основная карта не переназначается.
func (s *CardService) Remove(ctx context.Context, userID string, cardID int64) error {
	const op = "services.card.Remove"

	removed, err := s.repo.DisableCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound(op, "card does not exist")
	}
	s.log.Info("card removed", slog.String("op", op), sl.User(userID), slog.Int64("card_id", cardID))
	return nil
}
