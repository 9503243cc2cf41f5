package queries

import (
	"context"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/go-pg/pg/v10"
)

func CreateGame(ctx context.Context, game *models.Game, db *pg.DB) error {
	_, err := db.ModelContext(ctx, game).Insert()
	return err
}

func VerifyGame(ctx context.Context, id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	return db.ModelContext(ctx, game).WherePK().Select() == nil
}

func GetGamesByStatus(ctx context.Context, status string, db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	err := db.ModelContext(ctx, &games).
		Column("id", "name", "status", "winner", "updated_at").
		Where("status = ?", status).
		Order("updated_at DESC").
		Select()
	return games, err
}

func GetGame(ctx context.Context, id string, db *pg.DB) (*models.Game, error) {
	game := &models.Game{Id: id}
	if err := db.ModelContext(ctx, game).WherePK().Select(); err != nil {
		return nil, err
	}
	return game, nil
}

// SaveSnapshot writes the whole snapshot over the game's row, creating the
// row if the game was never recorded.
func SaveSnapshot(ctx context.Context, snap models.Snapshot, db *pg.DB) error {
	game := GameRecord(snap, time.Now())
	_, err := db.ModelContext(ctx, game).
		OnConflict("(id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("winner = EXCLUDED.winner").
		Set("snapshot = EXCLUDED.snapshot").
		Set("updated_at = EXCLUDED.updated_at").
		Insert()
	return err
}

// SnapshotStore persists every published snapshot to Postgres.
type SnapshotStore struct {
	DB *pg.DB
}

func (s *SnapshotStore) Publish(ctx context.Context, snap models.Snapshot) error {
	return SaveSnapshot(ctx, snap, s.DB)
}
