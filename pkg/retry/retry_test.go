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

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTemporary = errors.New("temporary")

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	var retried []int
	err := Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTemporary
		}
		return nil
	}, Attempts(5), Backoff(time.Millisecond, 0), OnRetry(func(attempt int, _ time.Duration, err error) {
		retried = append(retried, attempt)
		assert.ErrorIs(t, err, errTemporary)
	}))

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_ReturnsLastError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return errTemporary
	}, Attempts(3), Backoff(0, 0))

	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(context.Context) error {
		calls++
		return context.Canceled
	}, Attempts(5), Backoff(0, 0))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)

	calls = 0
	err = Do(context.Background(), func(context.Context) error {
		calls++
		return errTemporary
	}, Attempts(5), Backoff(0, 0), If(func(error) bool { return false }))
	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextEndsDuringWait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	err := Do(ctx, func(context.Context) error {
		calls++
		return errTemporary
	}, Attempts(10), Backoff(time.Second, 0))

	assert.ErrorIs(t, err, errTemporary)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, func(context.Context) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestWait(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, Wait(0, base, 0))
	assert.Equal(t, 400*time.Millisecond, Wait(2, base, 0))
	assert.Equal(t, 300*time.Millisecond, Wait(2, base, 300*time.Millisecond))
	assert.Equal(t, time.Second, Wait(62, base, time.Second))
}
