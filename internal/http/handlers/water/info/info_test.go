package info

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/water-subscription/internal/lib/apperr"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) WaterInfo(ctx context.Context, waterID int64) (*models.Water, error) {
	args := m.Called(ctx, waterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Water), args.Error(1)
}

func TestInfoHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "found",
			url:  "/waters/3",
			setupMock: func(m *MockService) {
				m.On("WaterInfo", mock.Anything, int64(3)).Return(&models.Water{ID: 3, Title: "Spring", Price: 500}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"price":500,"title":"Spring"}}`,
		},
		{
			name: "not found",
			url:  "/waters/4",
			setupMock: func(m *MockService) {
				m.On("WaterInfo", mock.Anything, int64(4)).Return(nil, apperr.NotFound("op", "water does not exist"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","code":"NOT_FOUND","error":"water does not exist"}`,
		},
		{
			name: "storage failure",
			url:  "/waters/5",
			setupMock: func(m *MockService) {
				m.On("WaterInfo", mock.Anything, int64(5)).Return(nil, apperr.Persistence("op", errors.New("conn refused")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","code":"PERSISTENCE_ERROR","error":"internal storage error"}`,
		},
		{
			name:           "bad id",
			url:            "/waters/abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Method(http.MethodGet, "/waters/{id}", New(logger, svc))

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
