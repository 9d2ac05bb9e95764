package main

import (
	"time"

	"cablemesh/internal/config"
)

// FrameLimiter provides high-precision frame rate limiting.
type FrameLimiter struct {
	next time.Time
}

func NewFrameLimiter() *FrameLimiter {
	return &FrameLimiter{}
}

// Wait blocks until the next frame should start, per the configured cap.
// Uses a hybrid sleep/spin approach for precision on high caps.
func (f *FrameLimiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
