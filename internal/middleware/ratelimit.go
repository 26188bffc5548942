package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window limiter keyed by client IP. A nil
// *RateLimiter allows everything.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRateLimiter starts a limiter allowing limit requests per window. It
// returns nil when either bound is non-positive, which disables limiting.
// Call Stop to end the sweeper goroutine.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 || window <= 0 {
		return nil
	}
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		stop:   make(chan struct{}),
	}
	rl.wg.Add(1)
	go rl.sweep()
	return rl
}

// sweep drops idle clients once per window until Stop is called
func (rl *RateLimiter) sweep() {
	defer rl.wg.Done()
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip := range rl.hits {
				if rl.recent(ip, now) == 0 {
					delete(rl.hits, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// recent trims ip's history to the current window and returns its length.
// Callers hold mu.
func (rl *RateLimiter) recent(ip string, now time.Time) int {
	times := rl.hits[ip]
	cut := 0
	for cut < len(times) && now.Sub(times[cut]) >= rl.window {
		cut++
	}
	times = times[cut:]
	rl.hits[ip] = times
	return len(times)
}

// Allow records a request from ip and reports whether it is within the limit
func (rl *RateLimiter) Allow(ip string) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if rl.recent(ip, now) >= rl.limit {
		return false
	}
	rl.hits[ip] = append(rl.hits[ip], now)
	return true
}

// Stop ends the sweeper and waits for it to exit. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	if rl == nil {
		return
	}
	rl.stopOnce.Do(func() { close(rl.stop) })
	rl.wg.Wait()
}

// Middleware rejects requests over the limit with 429 and a Retry-After header
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	retryAfter := strconv.Itoa(int(rl.window.Seconds()))

	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
