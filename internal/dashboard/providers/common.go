package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// resilientClient wraps an HTTP client with retries, exponential
// backoff, and a circuit breaker, shared by all outbound live-API
// calls.
type resilientClient struct {
	client     *http.Client
	circuit    *gobreaker.CircuitBreaker
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func newResilientClient(client *http.Client, name string) *resilientClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &resilientClient{
		client:     client,
		circuit:    cb,
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}
}

// getJSON performs a GET with resilience and decodes the JSON body into out.
func (r *resilientClient) getJSON(ctx context.Context, url string, out interface{}) error {
	if r.client == nil {
		return errors.New("http client not configured")
	}

	delay := r.baseDelay
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := r.circuit.Execute(func() (interface{}, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return nil, reqErr
			}

			resp, doErr := r.client.Do(req)
			if doErr != nil {
				return nil, doErr
			}

			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp := result.(*http.Response)
			defer resp.Body.Close()
			if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
				return fmt.Errorf("decode response: %w", decErr)
			}
			return nil
		}

		// An open circuit means the upstream is known-bad; retrying
		// would only queue more failures behind it.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= r.maxRetries {
			return lastErr
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > r.maxDelay {
			delay = r.maxDelay
		}
	}
}
