package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/database"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/metrics"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages in-process rate limiters per client IP
type IPRateLimiter struct {
	ips   map[string]*rateLimiterEntry
	mu    sync.RWMutex
	r     rate.Limit
	burst int
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter.
// r = requests per second, burst = max burst size
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		ips:   make(map[string]*rateLimiterEntry),
		r:     r,
		burst: burst,
	}

	// Cleanup old entries every minute
	go rl.cleanup()

	return rl
}

func (rl *IPRateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, entry := range rl.ips {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(rl.ips, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetLimiter returns the rate limiter for the given IP
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.ips[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.r, rl.burst)
		rl.ips[ip] = &rateLimiterEntry{
			limiter:  limiter,
			lastSeen: time.Now(),
		}
		return limiter
	}

	entry.lastSeen = time.Now()
	return entry.limiter
}

var (
	// General API: 600 requests per minute (10/sec)
	GeneralLimiter = NewIPRateLimiter(rate.Limit(10.0), 50)

	// Chat sends: 30 per minute, enough for normal conversation
	ChatLimiter = NewIPRateLimiter(rate.Limit(30.0/60.0), 10)
)

func reject(c *gin.Context, endpoint string) {
	metrics.RateLimitHits.WithLabelValues(endpoint).Inc()
	logger.Warn().
		Str("ip", c.ClientIP()).
		Str("path", c.Request.URL.Path).
		Msg("Rate limit exceeded")

	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "Too many requests",
		"message": "Rate limit exceeded. Please slow down.",
	})
	c.Abort()
}

// RateLimitMiddleware creates a rate limiting middleware with a custom limiter
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			reject(c, "general")
			return
		}
		c.Next()
	}
}

// GeneralRateLimit is for general API endpoints
func GeneralRateLimit() gin.HandlerFunc {
	return RateLimitMiddleware(GeneralLimiter)
}

// ChatRateLimit limits chat sends per IP. Prefers the shared Redis counter
// so the limit holds across instances; falls back to the in-process
// limiter when Redis is not configured or unreachable.
func ChatRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if database.Redis != nil {
			allowed, err := database.CheckRateLimit("chat:"+ip, 30, time.Minute)
			if err == nil {
				if !allowed {
					reject(c, "chat")
					return
				}
				c.Next()
				return
			}
			// Redis unreachable; fall through to the local limiter
		}

		if !ChatLimiter.GetLimiter(ip).Allow() {
			reject(c, "chat")
			return
		}
		c.Next()
	}
}
