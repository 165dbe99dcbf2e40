package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/models"
	"github.com/magabrotheeeer/water-subscription/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetWater(ctx context.Context, id int64) (*models.Water, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Water), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	if fill, ok := args.Get(2).(*models.Water); ok && fill != nil {
		*(result.(*models.Water)) = *fill
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCatalogService_WaterInfo(t *testing.T) {
	water := &models.Water{ID: 5, Title: "Spring 19L", Price: 9900}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		want       *models.Water
		wantErr    error
	}{
		{
			name: "cache hit skips repository",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "water:5", mock.Anything).Return(true, nil, water).Once()
			},
			want: water,
		},
		{
			name: "cache miss loads and caches",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "water:5", mock.Anything).Return(false, nil, nil).Once()
				r.On("GetWater", mock.Anything, int64(5)).Return(water, nil).Once()
				c.On("Set", mock.Anything, "water:5", water, time.Hour).Return(nil).Once()
			},
			want: water,
		},
		{
			name: "cache errors are not fatal",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "water:5", mock.Anything).Return(false, errors.New("redis down"), nil).Once()
				r.On("GetWater", mock.Anything, int64(5)).Return(water, nil).Once()
				c.On("Set", mock.Anything, "water:5", water, time.Hour).Return(errors.New("redis down")).Once()
			},
			want: water,
		},
		{
			name: "unknown water",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "water:5", mock.Anything).Return(false, nil, nil).Once()
				r.On("GetWater", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "storage fault",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "water:5", mock.Anything).Return(false, nil, nil).Once()
				r.On("GetWater", mock.Anything, int64(5)).
					Return(nil, apperr.Persistence("storage.GetWater", errors.New("conn reset"))).Once()
			},
			wantErr: apperr.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)
			svc := NewCatalogService(repo, cache, time.Hour, newNoopLogger())

			got, err := svc.WaterInfo(context.Background(), 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
