package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	retrier := NewDefaultRetrier()

	counter := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) error {
		counter++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	retrier := NewRetrier(fastConfig(5))

	counter := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) error {
		counter++
		if counter < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	retrier := NewRetrier(fastConfig(2))

	expectedErr := errors.New("permanent error")
	counter := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) error {
		counter++
		return expectedErr
	})
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if counter != 3 { // Initial try + 2 retries
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	retrier := NewRetrier(fastConfig(5))

	cause := errors.New("bad dsn")
	counter := 0
	err := retrier.Do(context.Background(), func(ctx context.Context) error {
		counter++
		return Permanent(cause)
	})
	if err != cause {
		t.Errorf("expected unwrapped cause, got %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewDefaultRetrier()

	err := retrier.Do(ctx, func(ctx context.Context) error {
		cancel()
		return errors.New("operation error after cancel")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_BackoffAndJitter(t *testing.T) {
	config := &Config{
		MaxRetries:    2,
		BackoffFactor: 2.0,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      1 * time.Second,
		Jitter:        50 * time.Millisecond,
	}
	retrier := NewRetrier(config)

	start := time.Now()
	counter := 0
	_ = retrier.Do(context.Background(), func(ctx context.Context) error {
		counter++
		return errors.New("error")
	})
	elapsed := time.Since(start)

	// two sleeps: 100ms+j and 200ms+j
	minExpectedDelay := 300 * time.Millisecond
	if elapsed < minExpectedDelay {
		t.Errorf("expected at least %v of backoff, got %v", minExpectedDelay, elapsed)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}
