package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

type RedisPersistence struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisPersistence) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &cart, nil
}

func (r *RedisPersistence) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersistence) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisPersistence) SaveShippingInfo(ctx context.Context, sessionID string, info domain.ShippingInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal shipping info failed: %w", err)
	}

	if err := r.client.Set(ctx, shippingKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersistence) LoadShippingInfo(ctx context.Context, sessionID string) (*domain.ShippingInfo, error) {
	data, err := r.client.Get(ctx, shippingKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var info domain.ShippingInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("unmarshal shipping info failed: %w", err)
	}
	return &info, nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func shippingKey(sessionID string) string {
	return fmt.Sprintf("shipping:%s", sessionID)
}
