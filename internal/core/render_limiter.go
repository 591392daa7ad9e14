package core

// render_limiter.go bounds how many export documents are rendered at once.
//
// Both document writers hold the whole file in memory, so the limiter caps
// parallel renders across all sessions. When every slot is taken a request
// waits up to maxWait before failing with ErrTooManyExports. WaitForDrain
// lets shutdown finish renders already in progress.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyExports is returned when no render slot frees up in time.
var ErrTooManyExports = errors.New("too many concurrent exports, please try again later")

const (
	DefaultMaxConcurrentExports = 4
	DefaultExportWait           = 15 * time.Second
)

// RenderLimiter is a counting semaphore for document renders.
type RenderLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewRenderLimiter allows at most maxConcurrent renders at once.
func NewRenderLimiter(maxConcurrent int, maxWait time.Duration) *RenderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExports
	}
	if maxWait <= 0 {
		maxWait = DefaultExportWait
	}
	return &RenderLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a render slot. The caller must Release it.
func (l *RenderLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-timer.C:
		return ErrTooManyExports
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (l *RenderLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of renders in progress.
func (l *RenderLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no render is in progress or ctx ends.
func (l *RenderLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RenderLimiterStatus is a point-in-time view of the limiter.
type RenderLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

func (l *RenderLimiter) Status() RenderLimiterStatus {
	active := l.ActiveCount()
	return RenderLimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
