package queries

import (
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
)

// StatusOf derives the stored game status from a snapshot. A game counts as
// waiting until some player has connected a wallet.
func StatusOf(snap models.Snapshot) string {
	if snap.GameOver {
		return models.GameOver
	}
	for _, p := range snap.Players {
		if p.Address != "" {
			return models.GameInProgress
		}
	}
	return models.GameWaiting
}

func GameRecord(snap models.Snapshot, now time.Time) *models.Game {
	s := snap
	return &models.Game{
		Id:        snap.GameId,
		Name:      snap.GameId,
		Status:    StatusOf(snap),
		Winner:    snap.Winner,
		Snapshot:  &s,
		UpdatedAt: now,
	}
}
