// Package store holds the buffers a ReplaySubject records its values in.
package store

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Buffer is a bounded, ordered record of values.
type Buffer[T any] interface {
	// Append records value, evicting the oldest value when the buffer is full.
	Append(ctx context.Context, value T) error
	// Load returns the recorded values that have not expired, oldest first.
	Load(ctx context.Context) ([]T, error)
	// Clear removes every recorded value.
	Clear(ctx context.Context) error
}

type bufferOptions struct {
	Expiry *time.Duration
	Clock  clock.Clock
}

type BufferOption func(*bufferOptions)

// WithExpiry discards values once they are older than expiry.
func WithExpiry(expiry time.Duration) BufferOption {
	return func(o *bufferOptions) {
		o.Expiry = &expiry
	}
}

// WithClock sets the clock used to timestamp and expire values.
func WithClock(clk clock.Clock) BufferOption {
	return func(o *bufferOptions) {
		o.Clock = clk
	}
}

func applyOptions(options []BufferOption) bufferOptions {
	opts := bufferOptions{Clock: clock.New()}
	for _, opt := range options {
		opt(&opts)
	}
	return opts
}

func (o bufferOptions) expired(at time.Time, now time.Time) bool {
	return o.Expiry != nil && !at.Add(*o.Expiry).After(now)
}
