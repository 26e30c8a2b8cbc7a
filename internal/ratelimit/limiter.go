// Package ratelimit implements fixed-window admission control backed by an
// external counter store. Windows are discrete buckets aligned to epoch
// boundaries; a request is admitted only when every configured window still
// has room, and rejection never records an increment past a ceiling.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStoreUnavailable wraps counter store failures. The limiter fails closed:
// callers must treat this as a rejection, not a bypass.
var ErrStoreUnavailable = errors.New("ratelimit: counter store unavailable")

// Window is one fixed admission window.
type Window struct {
	Name  string        // key segment and human label, e.g. "minute"
	Size  time.Duration // bucket width, aligned to the epoch
	Limit int64         // admission ceiling per bucket
}

// String renders the window the way it appears in rejection bodies,
// e.g. "5 per minute".
func (w Window) String() string {
	return fmt.Sprintf("%d per %s", w.Limit, w.Name)
}

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	Window     Window        // the window that rejected; zero value when allowed
	RetryAfter time.Duration // time until the rejecting bucket rolls over
}

// CounterStore provides atomic increment-and-check per key. Implementations
// must guarantee that two concurrent calls cannot both observe a stale
// under-limit count; the limiter does no locking of its own.
type CounterStore interface {
	// IncrementAndCheck increments the counter at key unless doing so would
	// exceed limit. It returns the resulting count and whether the request
	// was admitted. ttl bounds the counter's lifetime in the store.
	IncrementAndCheck(ctx context.Context, key string, limit int64, ttl time.Duration) (int64, bool, error)
}

// Limiter checks a sequence of windows against a shared counter store.
type Limiter struct {
	store   CounterStore
	windows []Window
	now     func() time.Time
}

func New(store CounterStore, windows ...Window) *Limiter {
	return &Limiter{store: store, windows: windows, now: time.Now}
}

// Allow charges one request against every window for the given client key,
// in configuration order. The first exhausted window rejects the request;
// windows already charged stay charged, matching fixed-window semantics.
func (l *Limiter) Allow(ctx context.Context, client string) (Decision, error) {
	now := l.now().UTC()

	for _, w := range l.windows {
		start := now.Truncate(w.Size)
		key := fmt.Sprintf("%s:%s:%d", w.Name, client, start.Unix())

		_, ok, err := l.store.IncrementAndCheck(ctx, key, w.Limit, w.Size)
		if err != nil {
			return Decision{}, fmt.Errorf("window %s: %w", w.Name, err)
		}
		if !ok {
			return Decision{
				Allowed:    false,
				Window:     w,
				RetryAfter: start.Add(w.Size).Sub(now),
			}, nil
		}
	}

	return Decision{Allowed: true}, nil
}
