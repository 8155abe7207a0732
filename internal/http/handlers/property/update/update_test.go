package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rental-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rental-manager/internal/models"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, username string, id int, req models.DummyProperty) (int, error) {
	args := m.Called(ctx, username, id, req)
	return args.Int(0), args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := models.DummyProperty{
		Title:        "Квартира на Ленина",
		Address:      "ул. Ленина, д. 5, кв. 12",
		PropertyType: "apartment",
		Status:       "occupied",
		Price:        47000,
		Area:         54,
	}

	tests := []struct {
		name           string
		url            string
		requestBody    interface{}
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное обновление объекта",
			url:         "/properties/123",
			requestBody: validBody,
			username:    "testuser",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "testuser", 123, mock.AnythingOfType("models.DummyProperty")).
					Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name:           "некорректный JSON",
			url:            "/properties/123",
			requestBody:    "not a json",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "ошибка валидации",
			url:            "/properties/123",
			requestBody:    models.DummyProperty{},
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/properties/123",
			requestBody:    validBody,
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "некорректный id в url",
			url:            "/properties/abc",
			requestBody:    validBody,
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:        "объект не найден или принадлежит другому владельцу",
			url:         "/properties/777",
			requestBody: validBody,
			username:    "testuser",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "testuser", 777, mock.AnythingOfType("models.DummyProperty")).
					Return(0, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"property not found"}`,
		},
		{
			name:        "ошибка сервиса",
			url:         "/properties/123",
			requestBody: validBody,
			username:    "testuser",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "testuser", 123, mock.AnythingOfType("models.DummyProperty")).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update property"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			// Устанавливаем URL параметр id для chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/properties/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
