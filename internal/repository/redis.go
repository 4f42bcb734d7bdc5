package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"velora/internal/config"
	"velora/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisBookingRepository persists the two booking slots in Redis without
// expiry: bookings survive restarts until explicitly cleared.
type RedisBookingRepository struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisBookingRepository(client *redis.Client) *RedisBookingRepository {
	return &RedisBookingRepository{client: client}
}

func (r *RedisBookingRepository) LoadCurrent(ctx context.Context) (*models.Booking, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, models.CurrentBookingKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current booking from redis: %w", err)
	}

	var booking models.Booking
	if err := json.Unmarshal([]byte(val), &booking); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current booking: %w", err)
	}

	return &booking, nil
}

func (r *RedisBookingRepository) SaveCurrent(ctx context.Context, booking *models.Booking) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if booking == nil {
		return r.ClearCurrent(ctx)
	}

	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal current booking: %w", err)
	}

	if err := r.client.Set(ctx, models.CurrentBookingKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set current booking in redis: %w", err)
	}

	return nil
}

func (r *RedisBookingRepository) ClearCurrent(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, models.CurrentBookingKey).Err(); err != nil {
		return fmt.Errorf("failed to delete current booking from redis: %w", err)
	}
	return nil
}

func (r *RedisBookingRepository) LoadHistory(ctx context.Context) ([]models.Booking, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, models.BookingHistoryKey).Result()
	if err == redis.Nil {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking history from redis: %w", err)
	}

	var history []models.Booking
	if err := json.Unmarshal([]byte(val), &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking history: %w", err)
	}

	return history, nil
}

func (r *RedisBookingRepository) SaveHistory(ctx context.Context, history []models.Booking) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if history == nil {
		history = []models.Booking{}
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal booking history: %w", err)
	}

	if err := r.client.Set(ctx, models.BookingHistoryKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set booking history in redis: %w", err)
	}

	return nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
