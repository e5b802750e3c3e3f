package respserver

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterRegistry hands out one token-bucket limiter per client IP,
// gating connection admission.
type limiterRegistry struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	entries map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newLimiterRegistry creates a registry allowing perSecond sustained
// connections per IP with the given burst. A non-positive rate disables
// limiting entirely.
func newLimiterRegistry(perSecond float64, burst int) *limiterRegistry {
	return &limiterRegistry{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		entries: make(map[string]*limiterEntry),
	}
}

// Allow reports whether a new connection from addr is admitted.
func (r *limiterRegistry) Allow(addr net.Addr) bool {
	if r.limit <= 0 {
		return true
	}

	ip := hostOnly(addr.String())

	r.mu.Lock()
	e, ok := r.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.entries[ip] = e
	}
	e.lastSeen = time.Now()
	r.mu.Unlock()

	return e.limiter.Allow()
}

// PruneStale drops limiters not consulted for longer than maxIdle and
// returns the number removed. An idle limiter is fully refilled, so
// dropping it changes nothing for a returning client.
func (r *limiterRegistry) PruneStale(maxIdle time.Duration) int {
	if r.limit <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for ip, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, ip)
			removed++
		}
	}
	return removed
}

// hostOnly strips the port from a host:port address.
func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
