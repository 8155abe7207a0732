package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rental-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rental-manager/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, username string, req models.DummyProperty) (int, error) {
	args := m.Called(ctx, username, req)
	return args.Int(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание объекта",
			requestBody: models.DummyProperty{
				Title:        "Квартира на Ленина",
				Address:      "ул. Ленина, д. 5, кв. 12",
				PropertyType: "apartment",
				Price:        45000,
				Area:         54,
			},
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", mock.AnythingOfType("models.DummyProperty")).
					Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":42`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации - отсутствуют обязательные поля",
			requestBody: models.DummyProperty{
				Title: "Квартира на Ленина",
			},
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Address is a required field`,
		},
		{
			name: "ошибка валидации - недопустимый тип объекта",
			requestBody: models.DummyProperty{
				Title:        "Гараж",
				Address:      "ул. Ленина, д. 5",
				PropertyType: "garage",
				Price:        5000,
				Area:         18,
			},
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PropertyType must be one of`,
		},
		{
			name: "нет авторизации",
			requestBody: models.DummyProperty{
				Title:        "Квартира на Ленина",
				Address:      "ул. Ленина, д. 5, кв. 12",
				PropertyType: "apartment",
				Price:        45000,
				Area:         54,
			},
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyProperty{
				Title:        "Квартира на Ленина",
				Address:      "ул. Ленина, д. 5, кв. 12",
				PropertyType: "apartment",
				Price:        45000,
				Area:         54,
			},
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", mock.AnythingOfType("models.DummyProperty")).
					Return(0, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create property"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

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
