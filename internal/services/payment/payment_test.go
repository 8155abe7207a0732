package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/rental-manager/internal/lib/clock"
	"github.com/magabrotheeeer/rental-manager/internal/models"
	"github.com/magabrotheeeer/rental-manager/internal/storage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePayment(ctx context.Context, pay models.Payment) (int, error) {
	args := m.Called(ctx, pay)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListPayments(ctx context.Context, username string, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}
func (m *RepoMock) ReadPayment(ctx context.Context, username string, id int) (*models.Payment, error) {
	args := m.Called(ctx, username, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *RepoMock) UpdatePayment(ctx context.Context, username string, id int, pay models.Payment) (int, error) {
	args := m.Called(ctx, username, id, pay)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemovePayment(ctx context.Context, username string, id int) (int, error) {
	args := m.Called(ctx, username, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListOverduePayments(ctx context.Context, username string, today time.Time) ([]*models.Payment, error) {
	args := m.Called(ctx, username, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}
func (m *RepoMock) ListUpcomingPayments(ctx context.Context, username string, from, to time.Time) ([]*models.Payment, error) {
	args := m.Called(ctx, username, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}
func (m *RepoMock) SumMonthlyIncome(ctx context.Context, username string, yearStart, yearEnd time.Time) ([]models.MonthlyIncome, error) {
	args := m.Called(ctx, username, yearStart, yearEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonthlyIncome), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// фиксированная дата для всех тестов пакета
var testNow = time.Date(2026, 3, 15, 17, 42, 0, 0, time.UTC)

func newTestService(repo *RepoMock, cache *CacheMock) *PaymentService {
	return NewPaymentService(repo, cache, clock.Fixed{Time: testNow}, newNoopLogger())
}

func TestPaymentService_Create(t *testing.T) {
	paymentDate := "2026-03-10"
	method := "bank_transfer"
	req := models.DummyPayment{
		LeaseID:       1,
		Amount:        45000,
		DueDate:       "2026-03-01",
		PaymentDate:   &paymentDate,
		Status:        "paid",
		PaymentMethod: &method,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		req        models.DummyPayment
		wantID     int
		wantErr    bool
	}{
		{
			name: "успешное создание проведённого платежа",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.Status == models.PaymentStatusPaid &&
						p.PaymentDate != nil &&
						p.PaymentDate.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) &&
						p.PaymentMethod != nil && *p.PaymentMethod == models.PaymentMethodBankTransfer
				})).Return(21, nil).Once()
				c.On("Invalidate", "monthly_income:user1:2026").Return(nil).Once()
			},
			req:    req,
			wantID: 21,
		},
		{
			name: "статус по умолчанию pending",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.Status == models.PaymentStatusPending && p.PaymentDate == nil
				})).Return(22, nil).Once()
				c.On("Invalidate", "monthly_income:user1:2026").Return(nil).Once()
			},
			req: models.DummyPayment{
				LeaseID: 1,
				Amount:  45000,
				DueDate: "2026-04-01",
			},
			wantID: 22,
		},
		{
			name:       "некорректная дата срока",
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			req: models.DummyPayment{
				LeaseID: 1,
				Amount:  45000,
				DueDate: "01.03.2026",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := newTestService(repo, cache)

			tt.setupMocks(repo, cache)

			got, err := svc.Create(context.Background(), "user1", tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Remove(t *testing.T) {
	t.Run("ноль строк означает not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := newTestService(repo, cache)

		repo.On("RemovePayment", mock.Anything, "user1", 8).Return(0, nil).Once()

		_, err := svc.Remove(context.Background(), "user1", 8)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		repo.AssertExpectations(t)
	})
}

func TestPaymentService_Overdue(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	payments := []*models.Payment{
		{ID: 1, Status: models.PaymentStatusPending, DueDate: today.AddDate(0, 0, -1)},
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := newTestService(repo, cache)

	repo.On("ListOverduePayments", mock.Anything, "user1", today).Return(payments, nil).Once()

	got, err := svc.Overdue(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, payments, got)

	repo.AssertExpectations(t)
}

func TestPaymentService_Upcoming(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	payments := []*models.Payment{
		{ID: 1, Status: models.PaymentStatusPending, DueDate: today},
		{ID: 2, Status: models.PaymentStatusPending, DueDate: windowEnd},
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := newTestService(repo, cache)

	repo.On("ListUpcomingPayments", mock.Anything, "user1", today, windowEnd).Return(payments, nil).Once()

	got, err := svc.Upcoming(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, payments, got)

	repo.AssertExpectations(t)
}

func TestPaymentService_MonthlyIncome(t *testing.T) {
	yearStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		check      func(t *testing.T, got []models.MonthlyIncome)
		wantErr    bool
	}{
		{
			name: "месяцы без платежей заполняются нулями",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "monthly_income:user1:2026", mock.Anything).Return(false, nil).Once()
				r.On("SumMonthlyIncome", mock.Anything, "user1", yearStart, yearEnd).Return([]models.MonthlyIncome{
					{Month: 1, Total: 45000},
					{Month: 3, Total: 90000},
				}, nil).Once()
				c.On("Set", "monthly_income:user1:2026", mock.Anything, time.Minute).Return(nil).Once()
			},
			check: func(t *testing.T, got []models.MonthlyIncome) {
				assert.Len(t, got, 12)
				assert.Equal(t, models.MonthlyIncome{Month: 1, Total: 45000}, got[0])
				assert.Equal(t, models.MonthlyIncome{Month: 2, Total: 0}, got[1])
				assert.Equal(t, models.MonthlyIncome{Month: 3, Total: 90000}, got[2])
				assert.Equal(t, models.MonthlyIncome{Month: 12, Total: 0}, got[11])
			},
		},
		{
			name: "без платежей всё равно 12 записей",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "monthly_income:user1:2026", mock.Anything).Return(false, nil).Once()
				r.On("SumMonthlyIncome", mock.Anything, "user1", yearStart, yearEnd).Return([]models.MonthlyIncome{}, nil).Once()
				c.On("Set", "monthly_income:user1:2026", mock.Anything, time.Minute).Return(nil).Once()
			},
			check: func(t *testing.T, got []models.MonthlyIncome) {
				assert.Len(t, got, 12)
				for i, row := range got {
					assert.Equal(t, i+1, row.Month)
					assert.Zero(t, row.Total)
				}
			},
		},
		{
			name: "попадание в кеш не трогает хранилище",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", "monthly_income:user1:2026", mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
					income := args.Get(1).(*[]models.MonthlyIncome)
					*income = []models.MonthlyIncome{{Month: 1, Total: 100}}
				}).Once()
			},
			check: func(t *testing.T, got []models.MonthlyIncome) {
				assert.Equal(t, []models.MonthlyIncome{{Month: 1, Total: 100}}, got)
			},
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "monthly_income:user1:2026", mock.Anything).Return(false, nil).Once()
				r.On("SumMonthlyIncome", mock.Anything, "user1", yearStart, yearEnd).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := newTestService(repo, cache)

			tt.setupMocks(repo, cache)

			got, err := svc.MonthlyIncome(context.Background(), "user1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.check(t, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
