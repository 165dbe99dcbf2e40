package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

// GetWater возвращает товар по ID или ErrNotFound.
func (s *Storage) GetWater(ctx context.Context, id int64) (*models.Water, error) {
	const op = "storage.GetWater"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, title, price
			  FROM waters
			  WHERE id = $1`
	var w models.Water
	err := s.db.QueryRow(ctx, query, id).Scan(&w.ID, &w.Title, &w.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return &w, nil
}
