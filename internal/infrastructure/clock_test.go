// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemClockSleepHonorsCancellation(t *testing.T) {
	clock := NewSystemClock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := clock.Sleep(ctx, time.Minute)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSystemClockSleepElapses(t *testing.T) {
	clock := NewSystemClock()

	start := time.Now()
	require.NoError(t, clock.Sleep(context.Background(), 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}
