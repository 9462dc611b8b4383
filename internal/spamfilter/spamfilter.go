// Package spamfilter throttles users who send messages faster than a cooldown.
package spamfilter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Filter keeps one token bucket per user: one message per cooldown, no burst.
type Filter struct {
	mu       sync.Mutex
	users    map[int64]*entry
	limit    rate.Limit
	now      func() time.Time
	cooldown time.Duration
}

// New creates a filter. A zero cooldown lets every message through.
func New(cooldown time.Duration) *Filter {
	limit := rate.Inf
	if cooldown > 0 {
		limit = rate.Every(cooldown)
	}
	return &Filter{
		users:    make(map[int64]*entry),
		limit:    limit,
		now:      time.Now,
		cooldown: cooldown,
	}
}

// Allow reports whether user may send a message now. A rejected message does
// not extend the cooldown.
func (f *Filter) Allow(user int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	e, ok := f.users[user]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(f.limit, 1)}
		f.users[user] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Len is the number of users currently tracked.
func (f *Filter) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// Evict forgets users not seen for longer than idle and returns how many
// were removed. A forgotten user starts with a full bucket.
func (f *Filter) Evict(idle time.Duration) int {
	if idle < f.cooldown {
		idle = f.cooldown
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.now().Add(-idle)
	removed := 0
	for user, e := range f.users {
		if e.lastSeen.Before(cutoff) {
			delete(f.users, user)
			removed++
		}
	}
	return removed
}

// Run evicts idle users every interval until ctx is done.
func (f *Filter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := f.Evict(interval); n > 0 {
				slog.Debug("evicted idle users from spam filter", "count", n)
			}
		}
	}
}
