package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
)

var ErrNoChallenge = errors.New("no challenge issued or challenge expired")

// ChallengeStore holds connect-wallet challenges. Take returns a challenge at
// most once.
type ChallengeStore interface {
	Put(ctx context.Context, key, message string, ttl time.Duration) error
	Take(ctx context.Context, key string) (string, error)
}

func ChallengeKey(gameID string, playerIndex int) string {
	return fmt.Sprintf("%s.%d.challenge", gameID, playerIndex)
}

type RedisChallenges struct {
	Pool *redis.Pool
}

func (r *RedisChallenges) Put(ctx context.Context, key, message string, ttl time.Duration) error {
	conn, err := r.Pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	secs := int(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return SetEx(key, message, secs, conn)
}

func (r *RedisChallenges) Take(ctx context.Context, key string) (string, error) {
	conn, err := r.Pool.GetContext(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	msg, err := GETDEL(key, conn)
	if errors.Is(err, redis.ErrNil) {
		return "", ErrNoChallenge
	}
	return msg, err
}

type memoryChallenge struct {
	message string
	expires time.Time
}

// MemoryChallenges is the single-process ChallengeStore.
type MemoryChallenges struct {
	mu    sync.Mutex
	items map[string]memoryChallenge
	now   func() time.Time
}

func NewMemoryChallenges() *MemoryChallenges {
	return &MemoryChallenges{items: map[string]memoryChallenge{}, now: time.Now}
}

func (m *MemoryChallenges) Put(_ context.Context, key, message string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryChallenge{message: message, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryChallenges) Take(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[key]
	delete(m.items, key)
	if !ok || m.now().After(c.expires) {
		return "", ErrNoChallenge
	}
	return c.message, nil
}
