package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Get(key string, conn redis.Conn) (string, error) {
	return redis.String(conn.Do("GET", key))
}

func GetBytes(key string, conn redis.Conn) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

func Del(key string, conn redis.Conn) error {
	_, err := conn.Do("DEL", key)
	return err
}

// GETDEL reads and removes key in one MULTI/EXEC transaction, so concurrent
// callers cannot both see the value.
func GETDEL(key string, conn redis.Conn) (string, error) {
	if err := conn.Send("MULTI"); err != nil {
		return "", err
	}
	if err := conn.Send("GET", key); err != nil {
		return "", err
	}
	if err := conn.Send("DEL", key); err != nil {
		return "", err
	}
	replies, err := redis.Values(conn.Do("EXEC"))
	if err != nil {
		return "", err
	}
	return redis.String(replies[0], nil)
}

func Set(key string, value interface{}, conn redis.Conn) error {
	_, err := redis.String(conn.Do("SET", key, value))
	return err
}

// SetEx stores value for ttlSeconds.
func SetEx(key string, value interface{}, ttlSeconds int, conn redis.Conn) error {
	_, err := redis.String(conn.Do("SET", key, value, "EX", ttlSeconds))
	return err
}

// SADD reports whether member was new to the set.
func SADD(key string, member string, conn redis.Conn) (bool, error) {
	n, err := redis.Int(conn.Do("SADD", key, member))
	return n == 1, err
}

func SISMEMBER(key string, member string, conn redis.Conn) (bool, error) {
	return redis.Bool(conn.Do("SISMEMBER", key, member))
}
