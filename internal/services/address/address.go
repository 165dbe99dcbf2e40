// Package address читает и перезаписывает адрес доставки пользователя.
package address

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/water-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

// AddressRepository определяет хранение адреса.
type AddressRepository interface {
	GetAddress(ctx context.Context, userID string) (*models.Address, error)
	UpdateAddress(ctx context.Context, userID string, addr models.Address) error
}

// AddressService реализует операции с адресом.
type AddressService struct {
	repo AddressRepository
	log  *slog.Logger
}

// NewAddressService создает новый экземпляр AddressService.
func NewAddressService(repo AddressRepository, log *slog.Logger) *AddressService {
	return &AddressService{
		repo: repo,
		log:  log,
	}
}

// Get возвращает адрес. Для несуществующего пользователя поля пустые.
func (s *AddressService) Get(ctx context.Context, userID string) (*models.Address, error) {
	return s.repo.GetAddress(ctx, userID)
}

// Set перезаписывает все три поля адреса.
func (s *AddressService) Set(ctx context.Context, userID string, addr models.Address) error {
	const op = "services.address.Set"
	if err := s.repo.UpdateAddress(ctx, userID, addr); err != nil {
		return err
	}
	s.log.Info("address updated", slog.String("op", op), sl.User(userID))
	return nil
}
