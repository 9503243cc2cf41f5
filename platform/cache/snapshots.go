package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/gomodule/redigo/redis"
)

// SnapshotCache keeps the latest snapshot of each game in redis so other
// processes can read state without going through the session.
type SnapshotCache struct {
	Pool *redis.Pool
}

func stateKey(gameID string) string {
	return fmt.Sprintf("%s.state", gameID)
}

func (s *SnapshotCache) Publish(ctx context.Context, snap models.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	conn, err := s.Pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return Set(stateKey(snap.GameId), raw, conn)
}

func (s *SnapshotCache) Load(ctx context.Context, gameID string) (models.Snapshot, error) {
	var snap models.Snapshot
	conn, err := s.Pool.GetContext(ctx)
	if err != nil {
		return snap, err
	}
	defer conn.Close()

	raw, err := GetBytes(stateKey(gameID), conn)
	if err != nil {
		return snap, err
	}
	err = json.Unmarshal(raw, &snap)
	return snap, err
}
