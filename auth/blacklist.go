package auth

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// BlacklistStore tracks tokens revoked by logout until they expire on their own.
type BlacklistStore interface {
	Add(token string, ttl time.Duration)
	Has(token string) bool
}

// Blacklist is the process-wide revoked-token store. Redis-backed when
// REDIS_ADDR is set so revocation survives restarts and spans replicas;
// otherwise an in-process map.
var Blacklist BlacklistStore = newBlacklist()

func newBlacklist() BlacklistStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return &memoryBlacklist{tokens: make(map[string]time.Time)}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Printf("✅ Token blacklist backed by redis at %s", addr)
	return &redisBlacklist{client: client}
}

type redisBlacklist struct {
	client *redis.Client
}

func (r *redisBlacklist) Add(token string, ttl time.Duration) {
	if ttl <= 0 {
		return // already expired, nothing to revoke
	}
	if err := r.client.Set(context.Background(), "revoked:"+token, "1", ttl).Err(); err != nil {
		log.Printf("❌ Failed to blacklist token: %v", err)
	}
}

func (r *redisBlacklist) Has(token string) bool {
	n, err := r.client.Exists(context.Background(), "revoked:"+token).Result()
	if err != nil {
		log.Printf("❌ Blacklist lookup failed: %v", err)
		return false
	}
	return n > 0
}

type memoryBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func (m *memoryBlacklist) Add(token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = time.Now().Add(ttl)
	// Evict stale entries while we hold the lock
	now := time.Now()
	for t, exp := range m.tokens {
		if exp.Before(now) {
			delete(m.tokens, t)
		}
	}
}

func (m *memoryBlacklist) Has(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.tokens[token]
	if !ok {
		return false
	}
	if exp.Before(time.Now()) {
		delete(m.tokens, token)
		return false
	}
	return true
}
