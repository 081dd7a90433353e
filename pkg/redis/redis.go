package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cetakindo/printshop-backend/config"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

func productKey(productID uint) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

// CacheProductSnapshot stores a serialized product detail snapshot. A nil
// client (redis disabled) is a no-op; the catalog works without the cache.
func CacheProductSnapshot(ctx context.Context, productID uint, payload []byte, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if err := client.Set(ctx, productKey(productID), payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache product snapshot", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	return nil
}

// GetProductSnapshot fetches a cached product detail snapshot. A cache miss
// returns (nil, nil).
func GetProductSnapshot(ctx context.Context, productID uint) ([]byte, error) {
	if client == nil {
		return nil, nil
	}
	payload, err := client.Get(ctx, productKey(productID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read product snapshot cache", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return payload, nil
}

// InvalidateProductSnapshot drops the cached snapshot after a catalog write.
func InvalidateProductSnapshot(ctx context.Context, productID uint) error {
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, productKey(productID)).Err(); err != nil {
		logger.Error("Failed to invalidate product snapshot cache", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}
	logger.Debug("Product snapshot cache invalidated", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}
