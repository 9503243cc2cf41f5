package game

import (
	"context"

	"github.com/DedS3t/flarepoly-backend/app/models"
)

func (t *table) buy(ctx context.Context, a Buy) error {
	pr := t.prompt
	if pr == nil || pr.PlayerIndex != t.active {
		return reject(ErrTurnOrder, "no buy prompt is open for player %d", t.active)
	}
	if a.TileID != nil && *a.TileID != pr.TileId {
		return reject(ErrValidation, "tile %d is not the prompted tile %d", *a.TileID, pr.TileId)
	}
	if owner, owned := t.ownership[pr.TileId]; owned {
		return reject(ErrValidation, "tile %d is already owned by player %d", pr.TileId, owner)
	}
	p := &t.players[t.active]

	if !t.cfg.RequireSettlement {
		if p.Balance < pr.Price {
			return reject(ErrValidation, "balance %d is below price %d", p.Balance, pr.Price)
		}
		t.debit(p.Index, pr.Price)
		t.ownership[pr.TileId] = p.Index
		t.prompt = nil
		t.recordBought(p.Index, pr.TileId, pr.Price)
		t.checkBankruptcy()
		t.advanceTurn()
		return nil
	}

	if t.cfg.Treasury == "" {
		return reject(ErrValidation, "no treasury address configured")
	}
	amount, err := t.rate.ToRaw(ctx, pr.Price)
	if err != nil {
		return wrap(ErrValidation, err)
	}
	t.open(&models.PendingSettlement{
		Kind:        models.SettleBuy,
		FromAddress: p.Address,
		ToAddress:   t.cfg.Treasury,
		Amount:      amount,
		TileId:      pr.TileId,
		Buyer:       p.Index,
		Seller:      -1,
		Price:       pr.Price,
	})
	return nil
}

func (t *table) skipBuy() error {
	pr := t.prompt
	if pr == nil || pr.PlayerIndex != t.active {
		return reject(ErrTurnOrder, "no buy prompt is open for player %d", t.active)
	}
	t.prompt = nil
	e := t.event(models.EventBuySkipped, t.active)
	e.Tile = pr.TileId
	t.record(e)
	t.advanceTurn()
	return nil
}

func (t *table) recordBought(player, tile, price int) {
	e := t.event(models.EventBought, player)
	e.Tile = tile
	e.Amount = price
	t.record(e)
}
