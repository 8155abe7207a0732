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

func (m *RepoMock) CreateLease(ctx context.Context, l models.Lease) (int, error) {
	args := m.Called(ctx, l)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListLeases(ctx context.Context, username string, limit, offset int) ([]*models.Lease, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}
func (m *RepoMock) ReadLease(ctx context.Context, username string, id int) (*models.Lease, error) {
	args := m.Called(ctx, username, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lease), args.Error(1)
}
func (m *RepoMock) UpdateLease(ctx context.Context, username string, id int, l models.Lease) (int, error) {
	args := m.Called(ctx, username, id, l)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveLease(ctx context.Context, username string, id int) (int, error) {
	args := m.Called(ctx, username, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListExpiringLeases(ctx context.Context, username string, from, to time.Time) ([]*models.Lease, error) {
	args := m.Called(ctx, username, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLeaseService_Create(t *testing.T) {
	req := models.DummyLease{
		PropertyID: 1,
		TenantID:   2,
		StartDate:  "2026-01-01",
		EndDate:    "2026-12-31",
		RentAmount: 45000,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		req        models.DummyLease
		wantID     int
		wantErr    bool
	}{
		{
			name: "успешное создание со статусом по умолчанию",
			setupMocks: func(r *RepoMock) {
				r.On("CreateLease", mock.Anything, mock.MatchedBy(func(l models.Lease) bool {
					return l.Status == models.LeaseStatusActive &&
						l.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
						l.EndDate.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
				})).Return(11, nil).Once()
			},
			req:    req,
			wantID: 11,
		},
		{
			name:       "некорректная дата начала",
			setupMocks: func(_ *RepoMock) {},
			req: models.DummyLease{
				PropertyID: 1,
				TenantID:   2,
				StartDate:  "not-a-date",
				EndDate:    "2026-12-31",
				RentAmount: 45000,
			},
			wantErr: true,
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(r *RepoMock) {
				r.On("CreateLease", mock.Anything, mock.Anything).Return(0, errors.New("db error")).Once()
			},
			req:     req,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := NewLeaseService(repo, clock.Real{}, newNoopLogger())

			tt.setupMocks(repo)

			got, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestLeaseService_Update(t *testing.T) {
	req := models.DummyLease{
		PropertyID: 1,
		TenantID:   2,
		StartDate:  "2026-01-01",
		EndDate:    "2026-06-30",
		RentAmount: 30000,
		Status:     "terminated",
	}

	t.Run("ноль строк означает not found", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewLeaseService(repo, clock.Real{}, newNoopLogger())

		repo.On("UpdateLease", mock.Anything, "user1", 3, mock.MatchedBy(func(l models.Lease) bool {
			return l.Status == models.LeaseStatusTerminated
		})).Return(0, nil).Once()

		_, err := svc.Update(context.Background(), "user1", 3, req)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		repo.AssertExpectations(t)
	})
}

func TestLeaseService_ExpiringSoon(t *testing.T) {
	// фиксированный момент времени, чтобы окно отчёта было предсказуемым
	now := time.Date(2026, 3, 15, 17, 42, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)

	leases := []*models.Lease{
		{ID: 1, Status: models.LeaseStatusActive, EndDate: today},
		{ID: 2, Status: models.LeaseStatusActive, EndDate: windowEnd},
	}

	repo := new(RepoMock)
	svc := NewLeaseService(repo, clock.Fixed{Time: now}, newNoopLogger())

	repo.On("ListExpiringLeases", mock.Anything, "user1", today, windowEnd).Return(leases, nil).Once()

	got, err := svc.ExpiringSoon(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, leases, got)

	repo.AssertExpectations(t)
}
