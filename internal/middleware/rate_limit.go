package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/i18n"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP. Buckets idle for
// limiterIdleTTL are dropped.
type RateLimiter struct {
	limiters      *cache.Cache
	limitersMutex sync.Mutex

	rps            rate.Limit
	burst          int
	whitelistedIPs map[string]bool
}

func NewRateLimiter(rps float64, burst int, whitelist ...string) *RateLimiter {
	rl := &RateLimiter{
		limiters:       cache.New(limiterIdleTTL, limiterIdleTTL),
		rps:            rate.Limit(rps),
		burst:          burst,
		whitelistedIPs: make(map[string]bool),
	}
	for _, ip := range whitelist {
		rl.whitelistedIPs[ip] = true
	}
	return rl
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.limitersMutex.Lock()
	defer rl.limitersMutex.Unlock()

	if v, exists := rl.limiters.Get(ip); exists {
		limiter := v.(*rate.Limiter)
		rl.limiters.SetDefault(ip, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := common.ClientIP(r)
		if rl.whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			w.Header().Set("Retry-After", "1")
			common.RespondError(w, time.Now(), nil, i18n.Tc(r.Context(), "errors.too_many_requests"), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
