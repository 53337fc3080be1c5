// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"time"

	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
)

// SystemClock is the real-time ports.Clock.
type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

var _ ports.Clock = (*SystemClock)(nil)

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

func (c *SystemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Sleep waits for d or until ctx is cancelled, whichever comes first.
func (c *SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
