// Package repository реализует хранилище данных на основе PostgreSQL
// для сервиса подписки на доставку воды: справочник товаров, параметры
// подписки и адрес пользователя, платёжные карты.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
)

// ErrNotFound запись не найдена. Сервисы переводят её в ошибку своей предметной области.
var ErrNotFound = errors.New("storage: record not found")

// DB набор методов пула соединений, которыми пользуется хранилище.
// Реализуется *pgxpool.Pool и моками pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Storage инкапсулирует пул соединений с PostgreSQL.
type Storage struct {
	db   DB
	pool *pgxpool.Pool
}

// New создаёт пул соединений и проверяет доступность базы.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	cfg, err := pgxpool.ParseConfig(storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: pool, pool: pool}, nil
}

// NewWithDB создаёт хранилище поверх готового соединения.
func NewWithDB(db DB) *Storage {
	return &Storage{db: db}
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	if err := s.db.Ping(ctx); err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}

// SQLDB возвращает database/sql обёртку над пулом (нужна для миграций).
func (s *Storage) SQLDB() *sql.DB {
	return stdlib.OpenDBFromPool(s.pool)
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return apperr.Persistence(op, ctx.Err())
	default:
		return nil
	}
}
