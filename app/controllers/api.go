package controllers

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/cache"
	"github.com/DedS3t/flarepoly-backend/platform/game"
	"github.com/DedS3t/flarepoly-backend/platform/queries"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Balances reads external token balances for display.
type Balances interface {
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
}

// SnapshotLoader reads the last published snapshot of a game.
type SnapshotLoader interface {
	Load(ctx context.Context, gameID string) (models.Snapshot, error)
}

// API holds what the HTTP handlers share. DB, Snapshots and Balances are
// optional.
type API struct {
	Games        *game.Manager
	DB           *pg.DB
	Snapshots    SnapshotLoader
	Challenges   cache.ChallengeStore
	Balances     Balances
	ChainID      int64
	JWTSecret    []byte
	ChallengeTTL time.Duration
	TokenTTL     time.Duration
	Log          *logrus.Entry
}

// gameID reads the :id route param, or the game bound by a fixed-game route group.
func gameID(c *fiber.Ctx) string {
	if id := c.Params("id"); id != "" {
		return id
	}
	if id, ok := c.Locals("game").(string); ok {
		return id
	}
	return ""
}

func (a *API) session(c *fiber.Ctx) (*game.Session, error) {
	return a.Games.Get(gameID(c))
}

// archived returns the last known state of a game that has no live session,
// from the snapshot cache first and then the games table.
func (a *API) archived(ctx context.Context, id string) (models.Snapshot, error) {
	if a.Snapshots != nil {
		if snap, err := a.Snapshots.Load(ctx, id); err == nil {
			return snap, nil
		}
	}
	if a.DB != nil {
		record, err := queries.GetGame(ctx, id, a.DB)
		if err == nil && record.Snapshot != nil {
			return *record.Snapshot, nil
		}
	}
	return models.Snapshot{}, game.ErrGameNotFound
}

func status(err error) int {
	switch {
	case errors.Is(err, game.ErrAuthentication), errors.Is(err, cache.ErrNoChallenge):
		return fiber.StatusUnauthorized
	case errors.Is(err, game.ErrTurnOrder), errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, game.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrVerification):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrSessionClosed):
		return fiber.StatusGone
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func (a *API) fail(c *fiber.Ctx, err error) error {
	code := status(err)
	if code == fiber.StatusInternalServerError {
		a.Log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (a *API) badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
