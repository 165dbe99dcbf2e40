package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/water-subscription/internal/migrations"
	"github.com/magabrotheeeer/water-subscription/internal/models"
	"github.com/magabrotheeeer/water-subscription/internal/storage/pgtest"
)

func setupTestDatabase(t *testing.T) *Storage {
	dsn := pgtest.Start(t)
	ctx := context.Background()

	var storage *Storage
	var err error
	for i := 0; i < 10; i++ {
		storage, err = New(ctx, dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")
	t.Cleanup(storage.Close)

	sqlDB := storage.SQLDB()
	defer func() { _ = sqlDB.Close() }()
	require.NoError(t, migrations.Run(sqlDB))
	return storage
}

func createUser(t *testing.T, s *Storage, deliveredAt *time.Time) string {
	t.Helper()
	id := uuid.New().String()
	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO users (id, water_delivered_at) VALUES ($1, $2)`, id, deliveredAt)
	require.NoError(t, err)
	return id
}

func createWater(t *testing.T, s *Storage) int64 {
	t.Helper()
	var id int64
	err := s.pool.QueryRow(context.Background(),
		`INSERT INTO waters (title, price) VALUES ('Spring 19L', 9900) RETURNING id`).Scan(&id)
	require.NoError(t, err)
	return id
}

func newCard(userID string, n int) models.PaymentCard {
	return models.PaymentCard{
		UserID:   userID,
		Number:   fmt.Sprintf("41111111111%05d", n),
		Password: "hash",
		ExpMonth: "01",
		ExpYear:  "29",
		Name:     "KIM",
		Phone:    "01012345678",
		Birth:    "900101",
	}
}

func TestIntegration_LockoutBoundary(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	waterID := createWater(t, s)
	opts := models.WaterOptions{WaterID: waterID, WaterAmount: 2, WaterCycle: 14}
	window := 72 * time.Hour

	now := time.Now().UTC().Truncate(time.Second)
	cutoff := now.Add(window)

	outside := now.Add(window + time.Second)
	inside := now.Add(window - time.Second)

	tests := []struct {
		name        string
		deliveredAt *time.Time
		wantUpdated bool
	}{
		{name: "delivery beyond window", deliveredAt: &outside, wantUpdated: true},
		{name: "delivery inside window", deliveredAt: &inside, wantUpdated: false},
		{name: "no delivery date", deliveredAt: nil, wantUpdated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := createUser(t, s, tt.deliveredAt)

			updated, err := s.ChangeWaterOptions(ctx, userID, opts, cutoff)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, updated)

			exists, err := s.UserExists(ctx, userID)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestIntegration_DeliveryDateWriteOnce(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	userID := createUser(t, s, nil)

	first := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 11, 15, 9, 0, 0, 0, time.UTC)

	recorded, err := s.SetDeliveredAtOnce(ctx, userID, first)
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = s.SetDeliveredAtOnce(ctx, userID, second)
	require.NoError(t, err)
	assert.False(t, recorded)

	var got time.Time
	err = s.pool.QueryRow(ctx, `SELECT water_delivered_at FROM users WHERE id = $1`, userID).Scan(&got)
	require.NoError(t, err)
	assert.True(t, first.Equal(got))
}

func TestIntegration_CardScenario(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	userID := createUser(t, s, nil)

	a, err := s.CreateCard(ctx, newCard(userID, 1))
	require.NoError(t, err)
	assert.True(t, a.IsMainPayment)

	b, err := s.CreateCard(ctx, newCard(userID, 2))
	require.NoError(t, err)
	assert.False(t, b.IsMainPayment)

	removed, err := s.DisableCard(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DisableCard(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second removal must not match")

	cards, err := s.ListCards(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, b.ID, cards[0].ID)
	assert.False(t, cards[0].IsMainPayment)

	count, err := s.CountCards(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIntegration_CardPagination(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	userID := createUser(t, s, nil)

	ids := make([]int64, 0, 25)
	for i := 0; i < 25; i++ {
		c, err := s.CreateCard(ctx, newCard(userID, i))
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	page, err := s.ListCards(ctx, userID, 10, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	// ids по убыванию: ранги 11–20 соответствуют ids[14]..ids[5]
	for i, c := range page {
		assert.Equal(t, ids[24-10-i], c.ID)
	}

	count, err := s.CountCards(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestIntegration_ConcurrentRegistrationSingleMain(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	userID := createUser(t, s, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.CreateCard(ctx, newCard(userID, n))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var mains int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM payment_cards WHERE user_id = $1 AND enabled AND is_main_payment`,
		userID).Scan(&mains)
	require.NoError(t, err)
	assert.Equal(t, 1, mains)
}

func TestIntegration_AddressAndWithdraw(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	userID := createUser(t, s, nil)

	empty, err := s.GetAddress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &models.Address{}, empty)

	addr := models.Address{Address: "Seoul", DetailAddress: "101-1203", AddressPublicPassword: "#1234"}
	require.NoError(t, s.UpdateAddress(ctx, userID, addr))

	got, err := s.GetAddress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &addr, got)

	require.NoError(t, s.DisableUser(ctx, userID))
	var enabled bool
	err = s.pool.QueryRow(ctx, `SELECT enabled FROM users WHERE id = $1`, userID).Scan(&enabled)
	require.NoError(t, err)
	assert.False(t, enabled)
}
