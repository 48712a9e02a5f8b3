package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RateLimiterOptions represents options for rate limiting
type RateLimiterOptions struct {
	// MaxActiveTransactions is the maximum number of concurrent active transactions (0 = unlimited)
	MaxActiveTransactions int
	// MaxTransactionsPerSecond is the maximum number of transactions per second (0 = unlimited)
	MaxTransactionsPerSecond int
	// MaxTransactionsPerMinute is the maximum number of transactions per minute (0 = unlimited)
	MaxTransactionsPerMinute int
	// WaitOnLimit indicates whether to wait when limit is reached (true) or return error immediately (false)
	WaitOnLimit bool
	// WaitTimeout is the maximum time to wait when WaitOnLimit is true
	WaitTimeout time.Duration
	// RetryDelay is the delay between retry attempts when waiting
	RetryDelay time.Duration
	// Namespace is the namespace for organizing rate limiters
	Namespace string
	// TransactionTTL is the maximum time a transaction can be active before auto-release
	TransactionTTL time.Duration
}

// NewRateLimiterOptions creates a new rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		WaitOnLimit:    false,
		WaitTimeout:    30 * time.Second,
		RetryDelay:     100 * time.Millisecond,
		TransactionTTL: 5 * time.Minute,
	}
}

// WithMaxActiveTransactions sets the maximum number of concurrent transactions
func (rlo *RateLimiterOptions) WithMaxActiveTransactions(max int) *RateLimiterOptions {
	if max < 0 {
		panic(fmt.Sprintf("invalid max active transactions: %d, must be non-negative", max))
	}
	rlo.MaxActiveTransactions = max
	return rlo
}

// WithMaxTransactionsPerSecond sets the maximum number of transactions per second
func (rlo *RateLimiterOptions) WithMaxTransactionsPerSecond(max int) *RateLimiterOptions {
	if max < 0 {
		panic(fmt.Sprintf("invalid max transactions per second: %d, must be non-negative", max))
	}
	rlo.MaxTransactionsPerSecond = max
	return rlo
}

// WithMaxTransactionsPerMinute sets the maximum number of transactions per minute
func (rlo *RateLimiterOptions) WithMaxTransactionsPerMinute(max int) *RateLimiterOptions {
	if max < 0 {
		panic(fmt.Sprintf("invalid max transactions per minute: %d, must be non-negative", max))
	}
	rlo.MaxTransactionsPerMinute = max
	return rlo
}

// WithWaitOnLimit sets whether to wait when limit is reached
func (rlo *RateLimiterOptions) WithWaitOnLimit(wait bool) *RateLimiterOptions {
	rlo.WaitOnLimit = wait
	return rlo
}

// WithWaitTimeout sets the maximum time to wait when WaitOnLimit is true
func (rlo *RateLimiterOptions) WithWaitTimeout(timeout time.Duration) *RateLimiterOptions {
	if timeout < 0 {
		panic(fmt.Sprintf("invalid wait timeout: %v, must be non-negative", timeout))
	}
	rlo.WaitTimeout = timeout
	return rlo
}

// WithRetryDelay sets the delay between retry attempts
func (rlo *RateLimiterOptions) WithRetryDelay(delay time.Duration) *RateLimiterOptions {
	if delay < 0 {
		panic(fmt.Sprintf("invalid retry delay: %v, must be non-negative", delay))
	}
	rlo.RetryDelay = delay
	return rlo
}

// WithNamespace sets the namespace for organizing rate limiters
func (rlo *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	rlo.Namespace = namespace
	return rlo
}

// Validate validates the rate limiter options
func (rlo *RateLimiterOptions) Validate() error {
	if rlo.MaxActiveTransactions == 0 && rlo.MaxTransactionsPerSecond == 0 && rlo.MaxTransactionsPerMinute == 0 {
		return fmt.Errorf("at least one limit must be configured (MaxActiveTransactions, MaxTransactionsPerSecond, or MaxTransactionsPerMinute)")
	}
	return nil
}

// RateLimiter represents a distributed rate limiter
type RateLimiter struct {
	client        *Client
	key           string
	opts          *RateLimiterOptions
	activeKeyName string
	tpsKeyName    string
	tpmKeyName    string
}

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limiter := &RateLimiter{
		client: client,
		key:    key,
		opts:   opts,
	}

	limiter.activeKeyName = limiter.buildKey("active")
	limiter.tpsKeyName = limiter.buildKey("tps")
	limiter.tpmKeyName = limiter.buildKey("tpm")

	return limiter, nil
}

// buildKey constructs the full key using Namespace::key::suffix format
func (rl *RateLimiter) buildKey(suffix string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + rl.key + "::" + suffix
	}
	return rl.key + "::" + suffix
}

// Acquire attempts to acquire a transaction slot
func (rl *RateLimiter) Acquire(ctx context.Context) (string, error) {
	if rl.opts.WaitOnLimit {
		return rl.acquireWithWait(ctx)
	}
	return rl.acquireImmediate(ctx)
}

// acquireImmediate attempts to acquire immediately or returns error
func (rl *RateLimiter) acquireImmediate(ctx context.Context) (string, error) {
	now := time.Now()
	transactionID := uuid.NewString()

	result, err := rl.client.GetClient().Eval(ctx, acquireScript, []string{
		rl.activeKeyName,
		rl.tpsKeyName,
		rl.tpmKeyName,
	},
		rl.opts.MaxActiveTransactions,
		rl.opts.MaxTransactionsPerSecond,
		rl.opts.MaxTransactionsPerMinute,
		transactionID,
		now.UnixNano(),
		int(rl.opts.TransactionTTL.Seconds()),
	).Result()

	if err != nil {
		return "", fmt.Errorf("failed to acquire rate limiter: %w", err)
	}

	// Result: 1 = success, 0 = active limit, -1 = TPS limit, -2 = TPM limit
	switch result.(int64) {
	case 1:
		return transactionID, nil
	case 0:
		return "", fmt.Errorf("active transactions limit reached (%d)", rl.opts.MaxActiveTransactions)
	case -1:
		return "", fmt.Errorf("transactions per second limit reached (%d TPS)", rl.opts.MaxTransactionsPerSecond)
	case -2:
		return "", fmt.Errorf("transactions per minute limit reached (%d TPM)", rl.opts.MaxTransactionsPerMinute)
	default:
		return "", fmt.Errorf("unknown result code: %d", result.(int64))
	}
}

// acquireWithWait attempts to acquire with retry/wait logic
func (rl *RateLimiter) acquireWithWait(ctx context.Context) (string, error) {
	deadline := time.Now().Add(rl.opts.WaitTimeout)

	for {
		transactionID, err := rl.acquireImmediate(ctx)
		if err == nil {
			return transactionID, nil
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("timeout waiting for rate limiter: %w", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(rl.opts.RetryDelay):
		}
	}
}

// acquireScript checks every configured limit atomically before admitting the transaction
const acquireScript = `
	local active_key = KEYS[1]
	local tps_key = KEYS[2]
	local tpm_key = KEYS[3]

	local max_active = tonumber(ARGV[1])
	local max_tps = tonumber(ARGV[2])
	local max_tpm = tonumber(ARGV[3])
	local transaction_id = ARGV[4]
	local now_nanos = tonumber(ARGV[5])
	local transaction_ttl = tonumber(ARGV[6])

	if max_active > 0 then
		local active_count = tonumber(redis.call("GET", active_key)) or 0
		if active_count >= max_active then
			return 0
		end
	end

	if max_tps > 0 then
		local tps_cutoff = now_nanos - 1000000000
		redis.call("ZREMRANGEBYSCORE", tps_key, "-inf", tps_cutoff)
		if redis.call("ZCOUNT", tps_key, tps_cutoff, "+inf") >= max_tps then
			return -1
		end
	end

	if max_tpm > 0 then
		local tpm_cutoff = now_nanos - (60 * 1000000000)
		redis.call("ZREMRANGEBYSCORE", tpm_key, "-inf", tpm_cutoff)
		if redis.call("ZCOUNT", tpm_key, tpm_cutoff, "+inf") >= max_tpm then
			return -2
		end
	end

	if max_active > 0 then
		redis.call("INCR", active_key)
		redis.call("EXPIRE", active_key, transaction_ttl * 2)
	end

	if max_tps > 0 then
		redis.call("ZADD", tps_key, now_nanos, transaction_id .. ":tps")
		redis.call("EXPIRE", tps_key, 2)
	end

	if max_tpm > 0 then
		redis.call("ZADD", tpm_key, now_nanos, transaction_id)
		redis.call("EXPIRE", tpm_key, 60)
	end

	return 1
`

// Release releases a transaction slot
func (rl *RateLimiter) Release(ctx context.Context, transactionID string) error {
	if transactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	if rl.opts.MaxActiveTransactions > 0 {
		count, err := rl.client.Decr(ctx, rl.activeKeyName)
		if err != nil {
			return fmt.Errorf("failed to release transaction: %w", err)
		}

		if count < 0 {
			_ = rl.client.Set(ctx, rl.activeKeyName, 0, rl.opts.TransactionTTL*2)
		}
	}

	return nil
}

// RateLimiterMetrics represents the current metrics of the rate limiter as key-value pairs
type RateLimiterMetrics map[string]string

// GetMetrics returns the current metrics of the rate limiter
func (rl *RateLimiter) GetMetrics(ctx context.Context) (RateLimiterMetrics, error) {
	metrics := make(RateLimiterMetrics)
	now := time.Now()

	if rl.opts.MaxActiveTransactions > 0 {
		activeCount, err := rl.client.GetInt(ctx, rl.activeKeyName)
		if err != nil {
			activeCount = 0
		}
		metrics["active_transactions"] = strconv.FormatInt(activeCount, 10)
		metrics["max_active_transactions"] = strconv.Itoa(rl.opts.MaxActiveTransactions)
	}

	if rl.opts.MaxTransactionsPerSecond > 0 {
		cutoff := now.Add(-1 * time.Second).UnixNano()
		count, err := rl.client.GetClient().ZCount(ctx, rl.tpsKeyName, strconv.FormatInt(cutoff, 10), "+inf").Result()
		if err != nil {
			count = 0
		}
		metrics["transactions_per_second"] = strconv.FormatInt(count, 10)
		metrics["max_transactions_per_second"] = strconv.Itoa(rl.opts.MaxTransactionsPerSecond)
	}

	if rl.opts.MaxTransactionsPerMinute > 0 {
		cutoff := now.Add(-60 * time.Second).UnixNano()
		count, err := rl.client.GetClient().ZCount(ctx, rl.tpmKeyName, strconv.FormatInt(cutoff, 10), "+inf").Result()
		if err != nil {
			count = 0
		}
		metrics["transactions_per_minute"] = strconv.FormatInt(count, 10)
		metrics["max_transactions_per_minute"] = strconv.Itoa(rl.opts.MaxTransactionsPerMinute)
	}

	return metrics, nil
}

// GetKey returns the rate limiter key
func (rl *RateLimiter) GetKey() string {
	return rl.key
}

// Cleanup removes all keys associated with this rate limiter
func (rl *RateLimiter) Cleanup(ctx context.Context) error {
	return rl.client.Delete(ctx, rl.activeKeyName, rl.tpsKeyName, rl.tpmKeyName)
}

// WithTransaction executes a function while holding a transaction slot
func (rl *RateLimiter) WithTransaction(ctx context.Context, fn func() error) error {
	transactionID, err := rl.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire rate limiter: %w", err)
	}

	defer func() {
		_ = rl.Release(ctx, transactionID)
	}()

	return fn()
}
