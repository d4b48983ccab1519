package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JonMunkholm/brfss/internal/web/middleware"
)

// rateLimiter hands every client IP its own token bucket refilled at
// perMinute tokens a minute. Idle visitors are dropped by a sweeper
// goroutine that runs until Stop.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	perMinute int
	idleTTL   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(perMinute int, sweepEvery time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors:  make(map[string]*visitor),
		perMinute: perMinute,
		idleTTL:   2 * time.Minute,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go rl.sweep(sweepEvery)
	return rl
}

func (rl *rateLimiter) sweep(every time.Duration) {
	defer close(rl.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if now.Sub(v.lastSeen) > rl.idleTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the sweeper and waits for it to exit. Safe to call twice.
func (rl *rateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		every := time.Minute / time.Duration(rl.perMinute)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), rl.perMinute)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *rateLimiter) visitorCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// middleware answers 429 with RATE001 once the client's bucket is empty.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(middleware.ClientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int((time.Minute / time.Duration(rl.perMinute)).Seconds())+1))
			respondError(w, r, errRateLimited, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
