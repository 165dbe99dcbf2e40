package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

// ChangeWaterOptions обновляет параметры подписки, если ожидаемая дата доставки
// не задана или не раньше cutoff. Проверка и запись выполняются одним UPDATE.
// Возвращает false, если ни одна строка не обновлена.
func (s *Storage) ChangeWaterOptions(ctx context.Context, userID string, opts models.WaterOptions, cutoff time.Time) (bool, error) {
	const op = "storage.ChangeWaterOptions"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `UPDATE users
			  SET water_id = $1, water_amount = $2, water_cycle = $3
			  WHERE id = $4
			    AND (water_delivered_at IS NULL OR water_delivered_at >= $5)`
	tag, err := s.db.Exec(ctx, query, opts.WaterID, opts.WaterAmount, opts.WaterCycle, userID, cutoff)
	if err != nil {
		return false, apperr.Persistence(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UserExists проверяет наличие записи пользователя.
func (s *Storage) UserExists(ctx context.Context, userID string) (bool, error) {
	const op = "storage.UserExists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, apperr.Persistence(op, err)
	}
	return exists, nil
}

// SetDeliveredAtOnce записывает ожидаемую дату доставки, только если она ещё не задана.
// Возвращает false, если дата уже была записана ранее.
func (s *Storage) SetDeliveredAtOnce(ctx context.Context, userID string, deliveredAt time.Time) (bool, error) {
	const op = "storage.SetDeliveredAtOnce"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `UPDATE users
			  SET water_delivered_at = $1
			  WHERE id = $2 AND water_delivered_at IS NULL`
	tag, err := s.db.Exec(ctx, query, deliveredAt, userID)
	if err != nil {
		return false, apperr.Persistence(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetAddress возвращает адрес доставки. Для несуществующего пользователя: пустой адрес.
func (s *Storage) GetAddress(ctx context.Context, userID string) (*models.Address, error) {
	const op = "storage.GetAddress"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT COALESCE(address, ''), COALESCE(detail_address, ''),
			      COALESCE(address_public_password, '')
			  FROM users
			  WHERE id = $1`
	var a models.Address
	err := s.db.QueryRow(ctx, query, userID).Scan(&a.Address, &a.DetailAddress, &a.AddressPublicPassword)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.Address{}, nil
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return &a, nil
}

// UpdateAddress перезаписывает все поля адреса.
func (s *Storage) UpdateAddress(ctx context.Context, userID string, addr models.Address) error {
	const op = "storage.UpdateAddress"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE users
			  SET address = $1, detail_address = $2, address_public_password = $3
			  WHERE id = $4`
	_, err := s.db.Exec(ctx, query, addr.Address, addr.DetailAddress, addr.AddressPublicPassword, userID)
	if err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}

// DisableUser помечает пользователя выбывшим (enabled = false).
func (s *Storage) DisableUser(ctx context.Context, userID string) error {
	const op = "storage.DisableUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx, `UPDATE users SET enabled = false WHERE id = $1`, userID)
	if err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}
