package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisOpTimeout bounds one limiter round trip. Throttling must never
// stall request handling behind a slow redis.
const redisOpTimeout = 250 * time.Millisecond

// quotaScript counts atomically within a fixed window: the first INCR on a
// key starts the window, later ones consume it.
const quotaScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter shares quota counters across API replicas, so a chat sender
// or scraping IP cannot dodge the limit by hitting different instances.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(quotaScript),
	}
}

// Allow fails open: when redis is unreachable the request goes through,
// since throttling is protection, not an authorization boundary.
func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
