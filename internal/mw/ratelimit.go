package mw

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter stores a token bucket per caller key.
type KeyedRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	r        rate.Limit
	b        int
}

// NewKeyedRateLimiter creates a limiter allowing r requests per second with burst b per key.
func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns the limiter for key, creating it on first use.
func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.RLock()
	limiter, exists := k.limiters[key]
	k.mu.RUnlock()
	if exists {
		return limiter
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if limiter, exists = k.limiters[key]; !exists {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	return limiter
}

// RateLimiter limits each tenant separately, falling back to the client IP
// when no tenant has been resolved yet.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(callerKey(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if id, ok := TenantID(c); ok {
		return "tenant:" + strconv.FormatInt(id, 10)
	}
	return "ip:" + c.ClientIP()
}
