package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/water-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/water-subscription/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) Set(ctx context.Context, userID string, addr models.Address) error {
	return m.Called(ctx, userID, addr).Error(0)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	const userUID = "0b8f3e1a-5a0e-4c55-8f43-2f0e0b6d2c11"

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "overwritten",
			body: `{"address":"Lenina 1","detail_address":"apt 5"}`,
			setupMock: func(m *MockService) {
				m.On("Set", mock.Anything, userUID, models.Address{Address: "Lenina 1", DetailAddress: "apt 5"}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "address required",
			body:           `{"detail_address":"apt 5"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Address is a required field"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/user/address", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, userUID))
			rr := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
