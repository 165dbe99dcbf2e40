package address

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetAddress(ctx context.Context, userID string) (*models.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *RepoMock) UpdateAddress(ctx context.Context, userID string, addr models.Address) error {
	return m.Called(ctx, userID, addr).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAddressService_Get(t *testing.T) {
	addr := &models.Address{Address: "Lenina 1", DetailAddress: "apt 5", AddressPublicPassword: "1234"}

	repo := new(RepoMock)
	repo.On("GetAddress", mock.Anything, "u").Return(addr, nil).Once()
	repo.On("GetAddress", mock.Anything, "missing").Return(&models.Address{}, nil).Once()

	svc := NewAddressService(repo, newNoopLogger())

	got, err := svc.Get(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	got, err = svc.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got.Address)
	repo.AssertExpectations(t)
}

func TestAddressService_Set(t *testing.T) {
	addr := models.Address{Address: "Lenina 1"}

	t.Run("overwrites", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdateAddress", mock.Anything, "u", addr).Return(nil).Once()
		require.NoError(t, NewAddressService(repo, newNoopLogger()).Set(context.Background(), "u", addr))
		repo.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdateAddress", mock.Anything, "u", addr).
			Return(apperr.Persistence("storage.UpdateAddress", errors.New("boom"))).Once()
		err := NewAddressService(repo, newNoopLogger()).Set(context.Background(), "u", addr)
		assert.ErrorIs(t, err, apperr.ErrPersistence)
	})
}
