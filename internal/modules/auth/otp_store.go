package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpTTL = 5 * time.Minute

// RedisOTPStore holds login codes in redis under otp:<email>.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Set(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, "otp:"+email, code, otpTTL).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, "otp:"+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidOTP
	}
	return code, err
}

func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, "otp:"+email).Err()
}
