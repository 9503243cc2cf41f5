package cache

import (
	"github.com/gomodule/redigo/redis"
)

const consumedRefsKey = "settlement.consumed"

// RedisRefs records settled transaction hashes in a redis set, shared by
// every process verifying against the same ledger.
type RedisRefs struct {
	Pool *redis.Pool
}

func (r *RedisRefs) Claim(ref string) (bool, error) {
	conn := r.Pool.Get()
	defer conn.Close()
	return SADD(consumedRefsKey, ref, conn)
}

func (r *RedisRefs) Consumed(ref string) (bool, error) {
	conn := r.Pool.Get()
	defer conn.Close()
	return SISMEMBER(consumedRefsKey, ref, conn)
}
