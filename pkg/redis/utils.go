package redis

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck performs a health check on the Redis connection
func HealthCheck(ctx context.Context, client *Client) error {
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	testKey := "health_check_test"
	testValue := "test_value"

	if err := client.Set(ctx, testKey, testValue, time.Minute); err != nil {
		return fmt.Errorf("set operation failed: %w", err)
	}

	value, err := client.Get(ctx, testKey)
	if err != nil {
		return fmt.Errorf("get operation failed: %w", err)
	}

	if value != testValue {
		return fmt.Errorf("value mismatch: expected %s, got %s", testValue, value)
	}

	if err := client.Delete(ctx, testKey); err != nil {
		return fmt.Errorf("delete operation failed: %w", err)
	}

	return nil
}

// ScanKeys scans for keys matching a pattern
func ScanKeys(ctx context.Context, client *Client, pattern string, count int64) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		scanKeys, nextCursor, err := client.Scan(ctx, cursor, pattern, count)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		keys = append(keys, scanKeys...)
		cursor = nextCursor

		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// DeleteKeysByPattern deletes all keys matching a pattern in batches
func DeleteKeysByPattern(ctx context.Context, client *Client, pattern string, batchSize int64) error {
	keys, err := ScanKeys(ctx, client, pattern, batchSize)
	if err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	for i := 0; i < len(keys); i += int(batchSize) {
		end := i + int(batchSize)
		if end > len(keys) {
			end = len(keys)
		}

		if err := client.Delete(ctx, keys[i:end]...); err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}
	}

	return nil
}
