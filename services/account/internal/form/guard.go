package form

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard refuses a second submission for a key until the first one ends. It is
// advisory: a guard that cannot be reached is reported, not bypassed.
// Acquire hands out a token and Release only frees the key while that token
// still holds it.
type Guard interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string)
}

type LocalGuard struct {
	mu       sync.Mutex
	next     uint64
	inFlight map[string]string
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{inFlight: map[string]string{}}
}

func (g *LocalGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return "", false, nil
	}
	g.next++
	token := strconv.FormatUint(g.next, 10)
	g.inFlight[key] = token
	return token, true, nil
}

func (g *LocalGuard) Release(_ context.Context, key, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[key] == token {
		delete(g.inFlight, key)
	}
}

// releaseScript deletes KEYS[1] only when it still holds ARGV[1], so a
// submission whose marker expired cannot free a newer one.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard shares in-flight markers between service replicas. The TTL bounds
// how long a crashed submission can block its key.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.New().String()
	ok, err := g.client.SetNX(ctx, guardKey(key), token, g.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (g *RedisGuard) Release(ctx context.Context, key, token string) {
	releaseScript.Run(context.WithoutCancel(ctx), g.client, []string{guardKey(key)}, token)
}

func guardKey(key string) string {
	return "form:" + key
}
