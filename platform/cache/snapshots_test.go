package cache

import (
	"context"
	"testing"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCache(t *testing.T) {
	ctx := context.Background()
	pool, conn := newFakePool()
	c := &SnapshotCache{Pool: pool}

	require.NoError(t, c.Publish(ctx, models.Snapshot{GameId: "g1", Version: 3, ActivePlayer: 1}))
	assert.Contains(t, conn.data, "g1.state")

	snap, err := c.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", snap.GameId)
	assert.Equal(t, uint64(3), snap.Version)
	assert.Equal(t, 1, snap.ActivePlayer)

	_, err = c.Load(ctx, "g2")
	assert.ErrorIs(t, err, redis.ErrNil)
}
