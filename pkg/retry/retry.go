// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package retry re-runs an operation with exponential backoff until it
// succeeds, the attempts run out or the context ends.
package retry

import (
	"context"
	"errors"
	"math"
	"time"
)

// Func is one attempt. It must respect ctx.
type Func func(ctx context.Context) error

type options struct {
	attempts int
	base     time.Duration
	max      time.Duration
	retryIf  func(error) bool
	onRetry  func(attempt int, wait time.Duration, err error)
}

type Option func(*options)

// Attempts caps the number of calls, the first one included. Values below
// one are ignored.
func Attempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.attempts = n
		}
	}
}

// Backoff sets the first wait and the ceiling. The wait doubles after each
// failure; a zero ceiling means unbounded.
func Backoff(base, max time.Duration) Option {
	return func(o *options) {
		o.base = base
		o.max = max
	}
}

// If limits retries to errors for which fn returns true.
func If(fn func(error) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.retryIf = fn
		}
	}
}

// OnRetry is called before each wait.
func OnRetry(fn func(attempt int, wait time.Duration, err error)) Option {
	return func(o *options) {
		o.onRetry = fn
	}
}

// Wait returns the delay after the given failed attempt, counted from zero.
func Wait(attempt int, base, max time.Duration) time.Duration {
	d := base
	for i := 0; i < attempt && d > 0; i++ {
		if d > math.MaxInt64/2 {
			d = math.MaxInt64
			break
		}
		d *= 2
	}
	if max > 0 && d > max {
		return max
	}
	return d
}

// Do calls fn until it returns nil and reports the last error otherwise.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	o := &options{
		attempts: 3,
		base:     time.Second,
		retryIf:  Retryable,
	}
	for _, opt := range opts {
		opt(o)
	}

	var lastErr error
	for attempt := 0; attempt < o.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !o.retryIf(lastErr) || attempt == o.attempts-1 {
			return lastErr
		}

		wait := Wait(attempt, o.base, o.max)
		if o.onRetry != nil {
			o.onRetry(attempt+1, wait, lastErr)
		}
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		}
	}
	return lastErr
}

// Retryable retries everything except context cancellation and deadlines.
func Retryable(err error) bool {
	return err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
