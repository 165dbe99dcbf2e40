package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

func enabledCards(userID string) squirrel.Eq {
	return squirrel.Eq{"user_id": userID, "enabled": true}
}

// ListCards возвращает включённые карты пользователя от новых к старым.
func (s *Storage) ListCards(ctx context.Context, userID string, limit, offset int) ([]*models.PaymentCard, error) {
	const op = "storage.ListCards"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query, args, err := psql.
		Select("id", "number", "exp_month", "exp_year", "name", "phone", "birth", "is_main_payment").
		From("payment_cards").
		Where(enabledCards(userID)).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()

	result := make([]*models.PaymentCard, 0, limit)
	for rows.Next() {
		c := models.PaymentCard{UserID: userID, Enabled: true}
		if err := rows.Scan(&c.ID, &c.Number, &c.ExpMonth, &c.ExpYear,
			&c.Name, &c.Phone, &c.Birth, &c.IsMainPayment); err != nil {
			return nil, apperr.Persistence(op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return result, nil
}

// CountCards возвращает число включённых карт пользователя.
func (s *Storage) CountCards(ctx context.Context, userID string) (int, error) {
	const op = "storage.CountCards"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query, args, err := psql.
		Select("COUNT(*)").
		From("payment_cards").
		Where(enabledCards(userID)).
		ToSql()
	if err != nil {
		return 0, apperr.Persistence(op, err)
	}

	var count int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperr.Persistence(op, err)
	}
	return count, nil
}

// CreateCard сохраняет карту. Первая включённая карта пользователя становится основной.
// Подсчёт и вставка идут в одной транзакции под advisory-блокировкой пользователя,
// поэтому параллельные регистрации не создадут двух основных карт.
func (s *Storage) CreateCard(ctx context.Context, card models.PaymentCard) (_ *models.PaymentCard, err error) {
	const op = "storage.CreateCard"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, card.UserID); err != nil {
		return nil, apperr.Persistence(op, err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM payment_cards WHERE user_id = $1 AND enabled = true`,
		card.UserID).Scan(&count)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	card.IsMainPayment = count == 0
	card.Enabled = true

	query := `INSERT INTO payment_cards (user_id, number, password, exp_month, exp_year,
			      name, phone, birth, is_main_payment, enabled)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	err = tx.QueryRow(ctx, query,
		card.UserID, card.Number, card.Password, card.ExpMonth, card.ExpYear,
		card.Name, card.Phone, card.Birth, card.IsMainPayment, card.Enabled).Scan(&card.ID)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return &card, nil
}

// DisableCard выключает включённую карту пользователя. Возвращает false,
// если такой карты нет (или она уже выключена).
func (s *Storage) DisableCard(ctx context.Context, userID string, cardID int64) (bool, error) {
	const op = "storage.DisableCard"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `UPDATE payment_cards
			  SET enabled = false
			  WHERE id = $1 AND user_id = $2 AND enabled = true`
	tag, err := s.db.Exec(ctx, query, cardID, userID)
	if err != nil {
		return false, apperr.Persistence(op, err)
	}
	return tag.RowsAffected() > 0, nil
}
