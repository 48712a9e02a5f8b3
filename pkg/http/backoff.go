package http

import (
	"fmt"
	"time"
)

// BackoffConfig controls retry behavior for a request.
type BackoffConfig struct {
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int
	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration
	// MaxDelay caps the delay between retries
	MaxDelay time.Duration
	// Multiplier grows the delay after every retry
	Multiplier float64
	// RetryableStatus lists the HTTP status codes worth retrying.
	// When empty, 429 and every 5xx status are retried.
	RetryableStatus []int
}

// NewBackoffConfig creates a backoff configuration with default values
func NewBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:   3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}

// WithMaxRetries sets the number of retries after the initial attempt
func (bc *BackoffConfig) WithMaxRetries(maxRetries int) *BackoffConfig {
	if maxRetries < 0 {
		panic(fmt.Sprintf("invalid max retries: %d, must be non-negative", maxRetries))
	}
	bc.MaxRetries = maxRetries
	return bc
}

// WithInitialDelay sets the delay before the first retry
func (bc *BackoffConfig) WithInitialDelay(delay time.Duration) *BackoffConfig {
	if delay < 0 {
		panic(fmt.Sprintf("invalid initial delay: %v, must be non-negative", delay))
	}
	bc.InitialDelay = delay
	return bc
}

// WithMaxDelay caps the delay between retries
func (bc *BackoffConfig) WithMaxDelay(delay time.Duration) *BackoffConfig {
	if delay < 0 {
		panic(fmt.Sprintf("invalid max delay: %v, must be non-negative", delay))
	}
	bc.MaxDelay = delay
	return bc
}

// WithMultiplier sets the delay growth factor
func (bc *BackoffConfig) WithMultiplier(multiplier float64) *BackoffConfig {
	if multiplier < 1 {
		panic(fmt.Sprintf("invalid multiplier: %v, must be at least 1", multiplier))
	}
	bc.Multiplier = multiplier
	return bc
}

// WithRetryableStatus sets the status codes worth retrying
func (bc *BackoffConfig) WithRetryableStatus(status ...int) *BackoffConfig {
	bc.RetryableStatus = status
	return bc
}

// shouldRetry reports whether the request outcome is retryable
func (bc *BackoffConfig) shouldRetry(status int, err error) bool {
	// Transport-level failures never produced a status
	if err != nil && status == 0 {
		return true
	}
	if len(bc.RetryableStatus) == 0 {
		return status == 429 || status >= 500
	}
	for _, s := range bc.RetryableStatus {
		if s == status {
			return true
		}
	}
	return false
}

// doRequestWithBackoff sends the request, retrying per the backoff configuration.
// A nil backoff falls back to the client default; with no default the request is sent once.
func (hc *Client) doRequestWithBackoff(method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil {
		backoff = hc.defaultBackoff
	}

	url := hc.buildURL(path)
	if len(queryParams) > 0 {
		url += "?" + buildQueryString(queryParams)
	}

	maxRetries := 0
	if backoff != nil {
		maxRetries = backoff.MaxRetries
	}

	var (
		success any
		errResp any
		status  int
		err     error
	)

	delay := time.Duration(0)
	if backoff != nil {
		delay = backoff.InitialDelay
		if backoff.MaxDelay > 0 && delay > backoff.MaxDelay {
			delay = backoff.MaxDelay
		}
	}

	for attempt := 0; ; attempt++ {
		if hc.logger != nil && attempt == 0 {
			hc.logger.LogRequest(method, url, headers, "")
		}

		start := time.Now()
		var raw []byte
		success, errResp, status, raw, err = hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
		latency := time.Since(start).Milliseconds()

		if err == nil {
			if hc.logger != nil {
				hc.logger.LogResponseSuccess(method, url, headers, "", status, string(raw), latency)
			}
			return success, errResp, status, nil
		}

		retryable := backoff != nil && attempt < maxRetries && backoff.shouldRetry(status, err)
		if !retryable {
			if hc.logger != nil {
				hc.logger.LogResponseError(method, url, headers, "", status, string(raw), latency, err)
			}
			return success, errResp, status, err
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, url, headers, "", status, string(raw), latency, err, attempt+1, maxRetries)
		}

		time.Sleep(delay)
		next := time.Duration(float64(delay) * backoff.Multiplier)
		if backoff.MaxDelay > 0 && next > backoff.MaxDelay {
			next = backoff.MaxDelay
		}
		delay = next
	}
}
