package expiring

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rental-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rental-manager/internal/models"
)

// MockService реализует интерфейс expiring.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ExpiringSoon(ctx context.Context, username string) ([]*models.Lease, error) {
	args := m.Called(ctx, username)
	res, _ := args.Get(0).([]*models.Lease)
	return res, args.Error(1)
}

func TestExpiringHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "найдены истекающие договоры",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("ExpiringSoon", mock.Anything, "testuser").
					Return([]*models.Lease{
						{
							ID:         7,
							PropertyID: 1,
							TenantID:   2,
							EndDate:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
							RentAmount: 45000,
							Status:     models.LeaseStatusActive,
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":1`,
		},
		{
			name:     "истекающих договоров нет",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("ExpiringSoon", mock.Anything, "testuser").
					Return([]*models.Lease{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":0`,
		},
		{
			name:           "нет авторизации",
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:     "ошибка сервиса",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("ExpiringSoon", mock.Anything, "testuser").
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not find expiring leases"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/leases/expiring_soon", nil)

			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}
