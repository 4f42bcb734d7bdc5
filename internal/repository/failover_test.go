package repository

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"velora/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) LoadCurrent(ctx context.Context) (*models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) SaveCurrent(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockRepo) ClearCurrent(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockRepo) LoadHistory(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepo) SaveHistory(ctx context.Context, history []models.Booking) error {
	return m.Called(ctx, history).Error(0)
}

func TestFailoverBookingRepository(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverBookingRepository(primary, fallback, &logger)

		booking := &models.Booking{ID: "b-1"}
		primary.On("LoadCurrent", ctx).Return(booking, nil).Once()

		got, err := repo.LoadCurrent(ctx)
		assert.NoError(t, err)
		assert.Equal(t, booking, got)
		assert.False(t, repo.isDown.Load())
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailureSwitchesToFallback", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverBookingRepository(primary, fallback, &logger)

		booking := &models.Booking{ID: "b-2"}
		primary.On("LoadCurrent", ctx).Return(nil, errors.New("connection refused")).Once()
		fallback.On("LoadCurrent", ctx).Return(booking, nil).Once()

		got, err := repo.LoadCurrent(ctx)
		assert.NoError(t, err)
		assert.Equal(t, booking, got)
		assert.True(t, repo.isDown.Load())

		// While down, writes skip the primary entirely.
		fallback.On("SaveCurrent", ctx, booking).Return(nil).Once()
		assert.NoError(t, repo.SaveCurrent(ctx, booking))

		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("WriteFailureFallsBack", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverBookingRepository(primary, fallback, &logger)

		history := []models.Booking{{ID: "b-3"}}
		primary.On("SaveHistory", ctx, history).Return(errors.New("down")).Once()
		fallback.On("SaveHistory", ctx, history).Return(nil).Once()

		assert.NoError(t, repo.SaveHistory(ctx, history))
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoversAfterProbeWindow", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverBookingRepository(primary, fallback, &logger)

		primary.On("LoadCurrent", ctx).Return(nil, errors.New("down")).Once()
		fallback.On("LoadCurrent", ctx).Return(nil, nil).Once()
		_, err := repo.LoadCurrent(ctx)
		assert.NoError(t, err)
		require.True(t, repo.isDown.Load())

		// Within the probe window reads stay on the fallback.
		fallback.On("LoadCurrent", ctx).Return(nil, nil).Once()
		_, err = repo.LoadCurrent(ctx)
		assert.NoError(t, err)
		assert.True(t, repo.isDown.Load())

		repo.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		booking := &models.Booking{ID: "b-4"}
		primary.On("LoadCurrent", ctx).Return(booking, nil).Once()
		got, err := repo.LoadCurrent(ctx)
		assert.NoError(t, err)
		assert.Equal(t, booking, got)
		assert.False(t, repo.isDown.Load())

		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("ConcurrentFailures", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverBookingRepository(primary, fallback, &logger)

		primary.On("LoadCurrent", ctx).Return(nil, errors.New("down"))
		primary.On("LoadHistory", ctx).Return(nil, errors.New("down"))
		fallback.On("LoadCurrent", ctx).Return(nil, nil)
		fallback.On("LoadHistory", ctx).Return([]models.Booking{}, nil)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = repo.LoadCurrent(ctx)
				_, _ = repo.LoadHistory(ctx)
			}()
		}
		wg.Wait()

		assert.True(t, repo.isDown.Load())
	})

	t.Run("ClearCurrentFallsBack", func(t *testing.T) {
		primary := new(mockRepo)
		fallback := new(mockRepo)
		repo := NewFailoverBookingRepository(primary, fallback, &logger)

		primary.On("ClearCurrent", ctx).Return(errors.New("down")).Once()
		fallback.On("ClearCurrent", ctx).Return(nil).Once()

		assert.NoError(t, repo.ClearCurrent(ctx))
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})
}
