package chain

import (
	"context"
	"errors"
	"math/big"
)

var (
	ErrBadAddress = errors.New("invalid address")
	ErrBadAmount  = errors.New("amount must be positive")
)

// RateSource converts in-game coins into raw external token units.
type RateSource interface {
	ToRaw(ctx context.Context, coins int) (*big.Int, error)
}

// FixedRate applies a constant number of raw units per coin.
type FixedRate struct {
	RawPerCoin *big.Int
}

// NewFixedRate parses a decimal raw-units-per-coin string.
func NewFixedRate(rawPerCoin string) (*FixedRate, error) {
	r, ok := new(big.Int).SetString(rawPerCoin, 10)
	if !ok || r.Sign() <= 0 {
		return nil, ErrBadAmount
	}
	return &FixedRate{RawPerCoin: r}, nil
}

func (f *FixedRate) ToRaw(_ context.Context, coins int) (*big.Int, error) {
	if coins <= 0 {
		return nil, ErrBadAmount
	}
	return new(big.Int).Mul(big.NewInt(int64(coins)), f.RawPerCoin), nil
}
