package web

import (
	"net/http"
	"sync"
	"time"

	"bitbucket.org/crgw/rates-inquiry/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	MessageRateLimited = "Rate limit exceeded. Try again later."
	limiterIdleTTL     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer than
// limiterIdleTTL are dropped on the next sweep.
type RateLimiter struct {
	perMinute int
	limiters  map[string]*clientLimiter
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		limiters:  make(map[string]*clientLimiter),
		lastSweep: CurrentTimeFunc(),
	}
}

func (s *RateLimiter) Allow(ip string) bool {
	return s.getLimiter(ip).Allow()
}

func (s *RateLimiter) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := CurrentTimeFunc()
	if now.Sub(s.lastSweep) > limiterIdleTTL {
		for key, client := range s.limiters {
			if now.Sub(client.lastSeen) > limiterIdleTTL {
				delete(s.limiters, key)
			}
		}
		s.lastSweep = now
	}

	client, exists := s.limiters[ip]
	if !exists {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute),
		}
		s.limiters[ip] = client
	}
	client.lastSeen = now

	return client.limiter
}

func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !s.Allow(ip) {
			if logger, ok := c.Get(LoggerKey); ok {
				logger.(*zerolog.Logger).Warn().Str("ip", ip).Msg("Rate limit exceeded")
			}

			responding.HandleError(c, http.StatusTooManyRequests, MessageRateLimited, nil)
			return
		}

		c.Next()
	}
}
