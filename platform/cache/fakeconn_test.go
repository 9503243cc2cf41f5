package cache

import (
	"errors"

	"github.com/gomodule/redigo/redis"
)

// fakeConn is an in-process redis.Conn covering the commands this package
// sends, including MULTI/EXEC queuing.
type fakeConn struct {
	data     map[string]string
	queued   [][]interface{}
	commands []string
}

func newFakePool() (*redis.Pool, *fakeConn) {
	c := &fakeConn{data: map[string]string{}}
	return &redis.Pool{Dial: func() (redis.Conn, error) { return c, nil }}, c
}

func (f *fakeConn) Close() error                  { return nil }
func (f *fakeConn) Err() error                    { return nil }
func (f *fakeConn) Flush() error                  { return nil }
func (f *fakeConn) Receive() (interface{}, error) { return nil, errors.New("receive not supported") }

func (f *fakeConn) Send(cmd string, args ...interface{}) error {
	f.commands = append(f.commands, cmd)
	if cmd != "MULTI" {
		f.queued = append(f.queued, append([]interface{}{cmd}, args...))
	}
	return nil
}

func (f *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if cmd == "" {
		return nil, nil
	}
	f.commands = append(f.commands, cmd)
	if cmd == "EXEC" {
		replies := make([]interface{}, 0, len(f.queued))
		for _, q := range f.queued {
			replies = append(replies, f.run(q[0].(string), q[1:]...))
		}
		f.queued = nil
		return replies, nil
	}
	return f.run(cmd, args...), nil
}

func (f *fakeConn) run(cmd string, args ...interface{}) interface{} {
	key := args[0].(string)
	switch cmd {
	case "SET":
		switch v := args[1].(type) {
		case []byte:
			f.data[key] = string(v)
		default:
			f.data[key] = v.(string)
		}
		return "OK"
	case "GET":
		v, ok := f.data[key]
		if !ok {
			return nil
		}
		return []byte(v)
	case "DEL":
		if _, ok := f.data[key]; !ok {
			return int64(0)
		}
		delete(f.data, key)
		return int64(1)
	}
	return redis.Error("ERR unknown command " + cmd)
}
