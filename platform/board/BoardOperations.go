package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/DedS3t/flarepoly-backend/app/models"
)

var (
	ErrEmptyBoard   = errors.New("board has no tiles")
	ErrTileNotFound = errors.New("not found")
)

// Default returns the 24 tile FlarePoly board.
func Default() *models.Board {
	tiles := []models.Tile{
		{Kind: models.TileStart, Name: "START"},
		{Kind: models.TilePurchasable, Name: "DOGE", Family: "meme", Price: 60, RentOrFee: 10},
		{Kind: models.TilePurchasable, Name: "PEPE", Family: "meme", Price: 60, RentOrFee: 5},
		{Kind: models.TileChance, Name: "Chance"},
		{Kind: models.TilePurchasable, Name: "BONK", Family: "sol", Price: 80, RentOrFee: 8},
		{Kind: models.TileTax, Name: "Gas Fee", RentOrFee: 100},
		{Kind: models.TilePrison, Name: "ACCOUNT BLOCKED"},
		{Kind: models.TilePurchasable, Name: "SOL", Family: "sol", Price: 140, RentOrFee: 14},
		{Kind: models.TilePurchasable, Name: "JUP", Family: "sol", Price: 120, RentOrFee: 12},
		{Kind: models.TileChance, Name: "Chance"},
		{Kind: models.TilePurchasable, Name: "BNB", Family: "bnb", Price: 200, RentOrFee: 50},
		{Kind: models.TilePurchasable, Name: "CAKE", Family: "bnb", Price: 160, RentOrFee: 20},
		{Kind: models.TileNeutral, Name: "HODL"},
		{Kind: models.TilePurchasable, Name: "TWT", Family: "bnb", Price: 160, RentOrFee: 16},
		{Kind: models.TilePurchasable, Name: "ETH", Family: "eth", Price: 240, RentOrFee: 200},
		{Kind: models.TilePurchasable, Name: "ARB", Family: "eth", Price: 150, RentOrFee: 15},
		{Kind: models.TileChance, Name: "Chance"},
		{Kind: models.TilePurchasable, Name: "UNI", Family: "eth", Price: 180, RentOrFee: 18},
		{Kind: models.TileSendToPrison, Name: "SYSTEM BUG"},
		{Kind: models.TileTax, Name: "Gas Fee", RentOrFee: 100},
		{Kind: models.TilePurchasable, Name: "BTC", Family: "btc", Price: 400, RentOrFee: 500},
		{Kind: models.TilePurchasable, Name: "WBTC", Family: "btc", Price: 380, RentOrFee: 480},
		{Kind: models.TileChance, Name: "Chance"},
		{Kind: models.TilePurchasable, Name: "STX", Family: "btc", Price: 180, RentOrFee: 25},
	}
	for i := range tiles {
		tiles[i].Id = i
	}
	return &models.Board{Tiles: tiles}
}

// LoadProperties reads a board from a JSON file and validates it.
func LoadProperties(path string) (*models.Board, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b models.Board
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decoding board %s: %w", path, err)
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks that ids are dense and ordered, that there is exactly one
// start and one prison tile, and that purchasable tiles carry a price.
func Validate(b *models.Board) error {
	if b == nil || len(b.Tiles) == 0 {
		return ErrEmptyBoard
	}

	starts, prisons := 0, 0
	for i, t := range b.Tiles {
		if t.Id != i {
			return fmt.Errorf("tile at position %d has id %d", i, t.Id)
		}
		switch t.Kind {
		case models.TileStart:
			starts++
		case models.TilePrison:
			prisons++
		case models.TilePurchasable:
			if t.Price <= 0 {
				return fmt.Errorf("purchasable tile %d has no price", t.Id)
			}
		case models.TileSendToPrison, models.TileNeutral, models.TileChance, models.TileTax, models.TileAction:
		default:
			return fmt.Errorf("tile %d has unknown kind %q", t.Id, t.Kind)
		}
		if t.RentOrFee < 0 {
			return fmt.Errorf("tile %d has negative rent or fee", t.Id)
		}
	}
	if starts != 1 {
		return fmt.Errorf("board needs exactly one start tile, found %d", starts)
	}
	if prisons != 1 {
		return fmt.Errorf("board needs exactly one prison tile, found %d", prisons)
	}
	return nil
}

func GetByPos(pos int, b *models.Board) (models.Tile, error) {
	t, ok := b.Tile(pos)
	if !ok {
		return models.Tile{}, ErrTileNotFound
	}
	return t, nil
}
