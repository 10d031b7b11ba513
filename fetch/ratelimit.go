package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// DomainLimiter spaces out requests per host so a batch hammers no
// single site. Hosts are throttled independently; waiting on one does
// not delay requests to another.
type DomainLimiter struct {
	rps float64

	mu     sync.Mutex
	byHost map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second
// to each host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		rps:    rps,
		byHost: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed or ctx is canceled.
func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.limiterFor(host).Wait(ctx)
}

// limiterFor returns the host's token bucket, creating it on first use
// with a burst of one.
func (l *DomainLimiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.byHost[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.byHost[host] = lim
	}
	return lim
}
