package ringcentral

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ringsync/pkg/domain/types"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

// defaultRateLimitWindow is the window applied when the platform does not
// report one, and the fallback wait when quota is exhausted with no known
// window expiry.
const defaultRateLimitWindow = 60 * time.Second

// remainingUnknown marks a group that has never been observed. Such a group
// never blocks.
const remainingUnknown = -1

// RateLimiter tracks server-advertised quota windows per rate-limit group and
// suspends callers when the platform reported no remaining quota for the
// group of the request about to be sent. State is owned by the client session
// it is injected into, not by the package.
type RateLimiter struct {
	mu           sync.Mutex
	groups       map[types.RateLimitGroup]*rateLimitGroup
	fallbackWait time.Duration
}

// rateLimitGroup holds the last observation for one group. windows holds the
// expiry time of each observed response window, oldest first; entries are
// non-decreasing and purged lazily.
type rateLimitGroup struct {
	mu        sync.Mutex
	remaining int
	windows   []time.Time
}

// RateLimiterOption configures a RateLimiter
type RateLimiterOption func(*RateLimiter)

// WithFallbackWait overrides the wait applied when quota is exhausted but no
// window expiry is known
func WithFallbackWait(d time.Duration) RateLimiterOption {
	return func(x *RateLimiter) {
		x.fallbackWait = d
	}
}

// NewRateLimiter creates an empty rate limiter
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	limiter := &RateLimiter{
		groups:       map[types.RateLimitGroup]*rateLimitGroup{},
		fallbackWait: defaultRateLimitWindow,
	}
	for _, opt := range opts {
		opt(limiter)
	}
	return limiter
}

// group returns the state for the given group, creating it on first use.
// The second return value reports whether the group was just created.
func (x *RateLimiter) group(name types.RateLimitGroup) (*rateLimitGroup, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if g, ok := x.groups[name]; ok {
		return g, false
	}
	g := &rateLimitGroup{remaining: remainingUnknown}
	x.groups[name] = g
	return g, true
}

// Wait must be called immediately before every outbound request tagged with
// the given group. When the last observation for the group reported zero
// remaining quota, the caller is suspended until the oldest known window
// expires (discarding exactly one queue entry), or for the fallback duration
// when no window is known. A never-observed group never blocks.
//
// Callers of the same group serialize on the group lock, so concurrent
// check/record sequences cannot race on the shared window queue. The wait is
// cancelled when ctx is done.
func (x *RateLimiter) Wait(ctx context.Context, name types.RateLimitGroup) error {
	if err := name.Validate(); err != nil {
		return err
	}

	g, created := x.group(name)
	if created {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.purge(time.Now())

	if g.remaining != 0 {
		return nil
	}

	if len(g.windows) == 0 {
		logging.From(ctx).Warn("rate limit quota exhausted, waiting fallback window",
			"group", name, "wait", x.fallbackWait)
		return sleep(ctx, x.fallbackWait)
	}

	wait := time.Until(g.windows[0])
	logging.From(ctx).Warn("rate limit quota exhausted, waiting for window expiry",
		"group", name, "wait", wait)
	if err := sleep(ctx, wait); err != nil {
		return err
	}
	g.windows = g.windows[1:]
	return nil
}

// Observe records the rate-limit headers of one response: the reported
// remaining quota and the window length. A non-positive window falls back to
// the default 60 seconds.
func (x *RateLimiter) Observe(name types.RateLimitGroup, remaining int, window time.Duration) {
	if name.Validate() != nil {
		return
	}
	if window <= 0 {
		window = defaultRateLimitWindow
	}

	g, _ := x.group(name)
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	g.purge(now)
	g.windows = append(g.windows, now.Add(window))
	g.remaining = remaining
}

// purge drops expired window entries from the head of the queue.
// Caller must hold g.mu.
func (g *rateLimitGroup) purge(now time.Time) {
	for len(g.windows) > 0 && !g.windows[0].After(now) {
		g.windows = g.windows[1:]
	}
}

// sleep waits for d or until ctx is cancelled
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "rate limit wait cancelled")
	case <-timer.C:
		return nil
	}
}
