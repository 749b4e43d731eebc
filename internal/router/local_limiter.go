package router

import (
	"context"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// localRateLimiter 单实例部署时的进程内限流，按 key 维护令牌桶
// 闲置超过两个窗口的桶会被清理。
type localRateLimiter struct {
	buckets *gocache.Cache
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

func newLocalRateLimiter(rule RateLimitRule) *localRateLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	if window <= 0 || rule.MaxRequests <= 0 {
		return &localRateLimiter{buckets: gocache.New(time.Minute, time.Minute), limit: rate.Inf}
	}
	idle := 2 * window
	return &localRateLimiter{
		buckets: gocache.New(idle, 2*idle),
		limit:   rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:   rule.MaxRequests,
		idle:    idle,
	}
}

func (l *localRateLimiter) allow(_ context.Context, key string) (int, bool, error) {
	reservation := l.bucket(key).Reserve()
	if !reservation.OK() {
		return 0, false, nil
	}
	delay := reservation.Delay()
	if delay <= 0 {
		return 0, true, nil
	}
	reservation.Cancel()
	return int(math.Ceil(delay.Seconds())), false, nil
}

func (l *localRateLimiter) bucket(key string) *rate.Limiter {
	if value, ok := l.buckets.Get(key); ok {
		limiter := value.(*rate.Limiter)
		l.buckets.Set(key, limiter, l.idle)
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	if err := l.buckets.Add(key, limiter, l.idle); err != nil {
		// 并发请求已写入同一个 key
		if value, ok := l.buckets.Get(key); ok {
			return value.(*rate.Limiter)
		}
	}
	return limiter
}
