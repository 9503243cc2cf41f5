package game

import (
	"context"

	"github.com/DedS3t/flarepoly-backend/app/models"
	uuid "github.com/satori/go.uuid"
)

func (t *table) createOffer(a CreateOffer) error {
	if err := t.blocked(); err != nil {
		return err
	}
	from := t.active
	if !a.Kind.Valid() {
		return reject(ErrValidation, "offer type must be sell or buy, got %q", a.Kind)
	}
	to, err := t.player(a.To)
	if err != nil {
		return err
	}
	if to.Index == from {
		return reject(ErrValidation, "cannot make an offer to yourself")
	}
	if to.Eliminated {
		return reject(ErrValidation, "player %d is eliminated", to.Index)
	}
	tile, ok := t.cfg.Board.Tile(a.TileID)
	if !ok || !tile.Purchasable() {
		return reject(ErrValidation, "tile %d cannot be traded", a.TileID)
	}
	if a.Price <= 0 {
		return reject(ErrValidation, "price must be positive")
	}

	owner, owned := t.ownership[tile.Id]
	switch a.Kind {
	case models.OfferSell:
		if !owned || owner != from {
			return reject(ErrValidation, "you do not own tile %d", tile.Id)
		}
	case models.OfferBuy:
		if !owned || owner != to.Index {
			return reject(ErrValidation, "player %d does not own tile %d", to.Index, tile.Id)
		}
	}

	o := models.TradeOffer{
		Id:         uuid.NewV4().String(),
		Kind:       a.Kind,
		FromPlayer: from,
		ToPlayer:   to.Index,
		TileId:     tile.Id,
		Price:      a.Price,
		CreatedAt:  t.now(),
	}
	t.offers = append([]models.TradeOffer{o}, t.offers...)

	e := t.event(models.EventOfferCreated, from)
	e.Counterparty = to.Index
	e.Tile = tile.Id
	e.Amount = a.Price
	e.Text = string(a.Kind)
	e.Ref = o.Id
	t.record(e)
	return nil
}

// offerFor finds an offer and checks the active player is its recipient.
func (t *table) offerFor(id string) (models.TradeOffer, error) {
	for _, o := range t.offers {
		if o.Id != id {
			continue
		}
		if o.ToPlayer != t.active {
			return o, reject(ErrTurnOrder, "offer %s is for player %d", id, o.ToPlayer)
		}
		return o, nil
	}
	return models.TradeOffer{}, reject(ErrValidation, "offer %s not found", id)
}

func (t *table) removeOffer(id string) {
	for i, o := range t.offers {
		if o.Id == id {
			t.offers = append(t.offers[:i:i], t.offers[i+1:]...)
			return
		}
	}
}

func (t *table) acceptOffer(ctx context.Context, a AcceptOffer) error {
	o, err := t.offerFor(a.OfferID)
	if err != nil {
		return err
	}
	seller, buyer := o.Parties()

	// The tile may have changed hands since the offer was made.
	if owner, owned := t.ownership[o.TileId]; !owned || owner != seller {
		t.removeOffer(o.Id)
		e := t.event(models.EventOfferInvalidated, o.ToPlayer)
		e.Tile = o.TileId
		e.Ref = o.Id
		t.record(e)
		return nil
	}
	if bal := t.players[buyer].Balance; bal < o.Price {
		return reject(ErrValidation, "player %d balance %d is below price %d", buyer, bal, o.Price)
	}

	if !t.cfg.RequireSettlement {
		t.transfer(seller, buyer, o.TileId, o.Price)
		t.removeOffer(o.Id)
		t.recordTraded(seller, buyer, o.TileId, o.Price)
		t.checkBankruptcy()
		t.advanceTurn()
		return nil
	}

	s, b := &t.players[seller], &t.players[buyer]
	if !s.Connected() || !b.Connected() {
		return reject(ErrValidation, "both players must connect a wallet to trade")
	}
	amount, err := t.rate.ToRaw(ctx, o.Price)
	if err != nil {
		return wrap(ErrValidation, err)
	}
	t.open(&models.PendingSettlement{
		Kind:        models.SettleTrade,
		FromAddress: b.Address,
		ToAddress:   s.Address,
		Amount:      amount,
		TileId:      o.TileId,
		OfferId:     o.Id,
		Buyer:       buyer,
		Seller:      seller,
		Price:       o.Price,
	})
	return nil
}

func (t *table) declineOffer(a DeclineOffer) error {
	o, err := t.offerFor(a.OfferID)
	if err != nil {
		return err
	}
	t.removeOffer(o.Id)
	e := t.event(models.EventOfferDeclined, o.ToPlayer)
	e.Counterparty = o.FromPlayer
	e.Tile = o.TileId
	e.Ref = o.Id
	t.record(e)
	t.advanceTurn()
	return nil
}

func (t *table) recordTraded(seller, buyer, tile, price int) {
	e := t.event(models.EventTraded, buyer)
	e.Counterparty = seller
	e.Tile = tile
	e.Amount = price
	t.record(e)
}
