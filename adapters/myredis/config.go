package myredis

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisUniversalClient creates and configures instance of redis universal client.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	c := redis.NewUniversalClient(universalOptions(redisOptions))
	return c, nil
}

// ConfigOption configures the client.
type ConfigOption func(*redis.Options)

// WithTimeout sets dial, read and write timeouts to d.
func WithTimeout(d time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = d
		o.ReadTimeout = d
		o.WriteTimeout = d
	}
}

func universalOptions(options *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:        []string{options.Addr},
		DB:           options.DB,
		Username:     options.Username,
		Password:     options.Password,
		WriteTimeout: options.WriteTimeout,
		ReadTimeout:  options.ReadTimeout,
		DialTimeout:  options.DialTimeout,
		MaxRetries:   options.MaxRetries,
		PoolSize:     options.PoolSize,
		TLSConfig:    options.TLSConfig,
	}
}
