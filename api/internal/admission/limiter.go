package admission

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limits configures the quotas. Zero disables a dimension.
type Limits struct {
	PerMinute map[Route]int
	Hourly    int
	Daily     int
}

// DefaultLimits derives per-route quotas from Policies plus the global ceilings.
func DefaultLimits() Limits {
	pm := make(map[Route]int, len(Policies))
	for r, p := range Policies {
		if p.PerMinute > 0 {
			pm[r] = p.PerMinute
		}
	}
	return Limits{PerMinute: pm, Hourly: 100, Daily: 1000}
}

// Limiter keeps token buckets per caller key. A single mutex covers the
// read-check-take sequence so concurrent admissions for one key never lose updates.
type Limiter struct {
	mu      sync.Mutex
	lim     Limits
	clk     func() time.Time
	callers map[string]*caller

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

type caller struct {
	routes map[Route]*rate.Limiter
	hour   *rate.Limiter
	day    *rate.Limiter
	seen   time.Time
}

// idleTTL is safe to evict after: every bucket, daily included, is full again by then.
const idleTTL = 24 * time.Hour

// NewLimiter starts a janitor that drops idle callers; call Stop to end it.
// clk may be nil.
func NewLimiter(lim Limits, clk func() time.Time) *Limiter {
	if clk == nil {
		clk = time.Now
	}
	l := &Limiter{
		lim:     lim,
		clk:     clk,
		callers: make(map[string]*caller),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go l.janitor(time.Minute)
	return l
}

// Allow reports whether key may call route now and, only if so, consumes one
// token from each applicable bucket.
func (l *Limiter) Allow(route Route, key string) bool {
	now := l.clk()

	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.caller(key, now)
	buckets := make([]*rate.Limiter, 0, 3)
	if rl := c.route(route, l.lim.PerMinute[route], now); rl != nil {
		buckets = append(buckets, rl)
	}
	if c.hour != nil {
		buckets = append(buckets, c.hour)
	}
	if c.day != nil {
		buckets = append(buckets, c.day)
	}

	for _, b := range buckets {
		if b.TokensAt(now) < 1 {
			return false
		}
	}
	for _, b := range buckets {
		b.AllowN(now, 1)
	}
	return true
}

// Stop ends the janitor. Safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}

func (l *Limiter) caller(key string, now time.Time) *caller {
	c, ok := l.callers[key]
	if !ok {
		c = &caller{routes: make(map[Route]*rate.Limiter)}
		if l.lim.Hourly > 0 {
			c.hour = newBucket(l.lim.Hourly, time.Hour)
		}
		if l.lim.Daily > 0 {
			c.day = newBucket(l.lim.Daily, 24*time.Hour)
		}
		l.callers[key] = c
	}
	c.seen = now
	return c
}

func (c *caller) route(r Route, perMinute int, now time.Time) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	rl, ok := c.routes[r]
	if !ok {
		rl = newBucket(perMinute, time.Minute)
		c.routes[r] = rl
	}
	return rl
}

// newBucket holds n tokens and refills n per window.
func newBucket(n int, window time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(n)/window.Seconds()), n)
}

func (l *Limiter) janitor(every time.Duration) {
	defer close(l.done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	now := l.clk()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, c := range l.callers {
		if now.Sub(c.seen) >= idleTTL {
			delete(l.callers, k)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.callers)
}
