package services

import (
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/shared"
)

// requestWindow is a per-key sliding-window quota. Implemented in-memory
// below and over redis in rate_limit_redis.go.
type requestWindow interface {
	// IsRateLimited prunes aged timestamps for key, then either records the
	// request and returns false, or returns true without recording when the
	// quota is already spent. Prune, check and record are one atomic step.
	IsRateLimited(key string) bool

	// RemainingRequests reports the unspent quota for key without recording
	// anything. Never negative.
	RemainingRequests(key string) int

	// Cleanup sweeps all keys, dropping aged timestamps and empty entries.
	Cleanup()
}

// slidingWindow keeps per-key request timestamps in millisecond resolution.
// A timestamp exactly at now-window is expired: only strictly newer ones
// count toward the quota.
type slidingWindow struct {
	maxRequests int
	window      time.Duration

	mu    sync.Mutex
	store map[string][]int64

	now func() time.Time
}

func newSlidingWindow(maxRequests int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		maxRequests: maxRequests,
		window:      window,
		store:       make(map[string][]int64),
		now:         time.Now,
	}
}

func (w *slidingWindow) IsRateLimited(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now().UnixMilli()
	windowStart := now - w.window.Milliseconds()

	recent := w.store[key][:0]
	for _, ts := range w.store[key] {
		if ts > windowStart {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= w.maxRequests {
		w.store[key] = recent
		return true
	}

	w.store[key] = append(recent, now)
	return false
}

func (w *slidingWindow) RemainingRequests(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	timestamps, ok := w.store[key]
	if !ok {
		return w.maxRequests
	}

	windowStart := w.now().UnixMilli() - w.window.Milliseconds()
	count := 0
	for _, ts := range timestamps {
		if ts > windowStart {
			count++
		}
	}

	if remaining := w.maxRequests - count; remaining > 0 {
		return remaining
	}
	return 0
}

func (w *slidingWindow) Cleanup() {
	w.mu.Lock()
	defer w.mu.Unlock()

	windowStart := w.now().UnixMilli() - w.window.Milliseconds()
	for key, timestamps := range w.store {
		recent := timestamps[:0]
		for _, ts := range timestamps {
			if ts > windowStart {
				recent = append(recent, ts)
			}
		}

		if len(recent) == 0 {
			delete(w.store, key)
			continue
		}
		w.store[key] = recent
	}
}

// RateLimitService enforces two independent quotas keyed by user id (IP for
// unauthenticated traffic): a tight one for the AI generation endpoint and a
// loose one for general API usage.
type RateLimitService struct {
	context.DefaultService

	aiWindow  requestWindow
	apiWindow requestWindow

	redisSvc *RedisService

	closed chan struct{}
}

const RATE_LIMIT_SVC = "rate_limit_svc"

const (
	aiMaxRequests = 5
	aiWindowSize  = 10 * time.Minute

	apiMaxRequests = 100
	apiWindowSize  = time.Minute
)

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.aiWindow = newSlidingWindow(aiMaxRequests, aiWindowSize)
	svc.apiWindow = newSlidingWindow(apiMaxRequests, apiWindowSize)
	svc.closed = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)

	// With redis available the AI quota moves to a shared window so every
	// instance counts against the same store.
	if client := svc.redisSvc.GetClient(); client != nil {
		svc.aiWindow = newRedisWindow(client, "ratelimit:ai", aiMaxRequests, aiWindowSize)
		log.Info("AI rate limit using shared redis window")
	}

	go svc.startCleanupJob()

	return nil
}

func (svc *RateLimitService) Shutdown() {
	close(svc.closed)
}

// AIRateLimited checks and spends one slot of the AI quota for key.
func (svc *RateLimitService) AIRateLimited(key string) bool {
	return svc.aiWindow.IsRateLimited(key)
}

// AIRemainingRequests reports the unspent AI quota without recording.
func (svc *RateLimitService) AIRemainingRequests(key string) int {
	return svc.aiWindow.RemainingRequests(key)
}

// AIRateLimit gates the AI generation endpoint. It runs before any request
// parsing so an exhausted quota never reaches the model provider.
func (svc *RateLimitService) AIRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := svc.requestKey(c)

		if svc.aiWindow.IsRateLimited(key) {
			remaining := svc.aiWindow.RemainingRequests(key)
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return shared.ResponseRaw(c, fiber.StatusTooManyRequests, dto.RateLimitedResponse{
				Error:     "Too many requests",
				Message:   "Rate limit exceeded. Please try again later.",
				Remaining: remaining,
			})
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(svc.aiWindow.RemainingRequests(key)))
		return c.Next()
	}
}

// APIRateLimit applies the general quota to CRUD endpoints.
func (svc *RateLimitService) APIRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := svc.requestKey(c)

		if svc.apiWindow.IsRateLimited(key) {
			remaining := svc.apiWindow.RemainingRequests(key)
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return shared.ResponseRaw(c, fiber.StatusTooManyRequests, dto.RateLimitedResponse{
				Error:     "Too many requests",
				Message:   "Too many requests. Please slow down.",
				Remaining: remaining,
			})
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(svc.apiWindow.RemainingRequests(key)))
		return c.Next()
	}
}

func (svc *RateLimitService) requestKey(c *fiber.Ctx) string {
	if userID, ok := c.Locals(shared.UserID).(string); ok && userID != "" {
		return userID
	}
	return getClientIP(c)
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			svc.aiWindow.Cleanup()
			svc.apiWindow.Cleanup()
			log.Debug("Rate limit cleanup completed")
		case <-svc.closed:
			return
		}
	}
}

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first (for load balancers/proxies)
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}
