package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dlt-orchestrator/internal/core/ports"
)

// ParentLocker implements ports.ParentLocker inside one process.
// Each held key owns a channel that is closed on release to wake waiters.
type ParentLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

// NewParentLocker creates a locker that waits at most wait for a held key.
func NewParentLocker(wait time.Duration) *ParentLocker {
	return &ParentLocker{held: make(map[string]chan struct{}), wait: wait}
}

func (l *ParentLocker) Lock(ctx context.Context, key string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	for {
		l.mu.Lock()
		ch, busy := l.held[key]
		if !busy {
			ch = make(chan struct{})
			l.held[key] = ch
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(ch)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ports.ErrLockNotAcquired, key)
		}
	}
}
