package provider

import (
	"context"
	stdErrors "errors"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	pkgai "github.com/johnquangdev/polyglot-minutes/pkg/ai"
)

// RetryPolicy bounds retries of remote provider calls
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy mirrors the limits used for upstream AI submissions
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 2 * time.Second,
		MaxInterval:     10 * time.Second,
		MaxElapsedTime:  30 * time.Second,
	}
}

// withRetry runs fn with exponential backoff until it succeeds, returns a
// permanent error, or the policy/context gives up
func withRetry(ctx context.Context, policy RetryPolicy, logger *zap.Logger, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = policy.InitialInterval
	bo.MaxInterval = policy.MaxInterval
	bo.MaxElapsedTime = policy.MaxElapsedTime

	attempt := 0
	wrapped := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		if logger != nil {
			logger.Warn("provider call failed, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	}

	return backoff.Retry(wrapped, backoff.WithContext(bo, ctx))
}

// isPermanent reports client errors that a retry cannot fix
func isPermanent(err error) bool {
	if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if stdErrors.As(err, &apiErr) {
		return isClientStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if stdErrors.As(err, &reqErr) {
		return isClientStatus(reqErr.HTTPStatusCode)
	}
	var statusErr *pkgai.StatusError
	if stdErrors.As(err, &statusErr) {
		return isClientStatus(statusErr.StatusCode)
	}
	var parseErr *summaryParseError
	return stdErrors.As(err, &parseErr)
}

func isClientStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout
}
