package game

import (
	"context"
	"math/big"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/board"
	"github.com/DedS3t/flarepoly-backend/platform/dice"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Players      int
	StartBalance int
	StartBonus   int

	// RequireSettlement routes buys and accepted trades through a pending
	// settlement confirmed by an external transfer.
	RequireSettlement bool
	Treasury          string
	MinConfirmations  uint64
	VerifyTimeout     time.Duration

	LogCap int
	Board  *models.Board
	Chance []models.ChanceCard
}

func DefaultConfig() Config {
	return Config{
		Players:           4,
		StartBalance:      1500,
		StartBonus:        200,
		RequireSettlement: true,
		MinConfirmations:  1,
		VerifyTimeout:     15 * time.Second,
		LogCap:            400,
		Board:             board.Default(),
		Chance:            board.DefaultChance(),
	}
}

// Verifier confirms an external transfer. It must be safe to ask about the
// same reference twice.
type Verifier interface {
	VerifyTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error)
}

// RateSource converts in-game coins to raw external units.
type RateSource interface {
	ToRaw(ctx context.Context, coins int) (*big.Int, error)
}

// Publisher receives the full snapshot after every applied mutation.
type Publisher interface {
	Publish(ctx context.Context, snap models.Snapshot) error
}

type Deps struct {
	Gate       *auth.Gate
	Dice       dice.Source
	Verifier   Verifier
	Rate       RateSource
	Publishers []Publisher
	Log        *logrus.Entry
	Now        func() time.Time
}

// oneToOne is used when no rate source is configured.
type oneToOne struct{}

func (oneToOne) ToRaw(_ context.Context, coins int) (*big.Int, error) {
	return big.NewInt(int64(coins)), nil
}

func (c *Config) withDefaults() {
	d := DefaultConfig()
	if c.Players < 2 {
		c.Players = d.Players
	}
	if c.StartBalance <= 0 {
		c.StartBalance = d.StartBalance
	}
	if c.LogCap <= 0 {
		c.LogCap = d.LogCap
	}
	if c.VerifyTimeout <= 0 {
		c.VerifyTimeout = d.VerifyTimeout
	}
	if c.Board == nil {
		c.Board = d.Board
	}
	if c.Chance == nil {
		c.Chance = d.Chance
	}
}

func (d *Deps) withDefaults() {
	if d.Gate == nil {
		d.Gate = auth.NewGate(nil, 0)
	}
	if d.Dice == nil {
		d.Dice = dice.NewSeeded(0)
	}
	if d.Rate == nil {
		d.Rate = oneToOne{}
	}
	if d.Log == nil {
		d.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}
