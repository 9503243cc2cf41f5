package models

import (
	"math/big"
	"time"
)

type OfferKind string

const (
	OfferSell OfferKind = "sell"
	OfferBuy  OfferKind = "buy"
)

func (k OfferKind) Valid() bool {
	return k == OfferSell || k == OfferBuy
}

// TradeOffer proposes moving TileId between FromPlayer and ToPlayer for Price.
// A sell offer assumes FromPlayer owns the tile, a buy offer assumes ToPlayer does.
type TradeOffer struct {
	Id         string    `json:"id"`
	Kind       OfferKind `json:"type"`
	FromPlayer int       `json:"fromPlayer"`
	ToPlayer   int       `json:"toPlayer"`
	TileId     int       `json:"tileId"`
	Price      int       `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Parties returns (seller, buyer) for the offer.
func (o TradeOffer) Parties() (int, int) {
	if o.Kind == OfferSell {
		return o.FromPlayer, o.ToPlayer
	}
	return o.ToPlayer, o.FromPlayer
}

type BuyPrompt struct {
	PlayerIndex int `json:"playerId"`
	TileId      int `json:"cellId"`
	Price       int `json:"price"`
}

type SettlementKind string

const (
	SettleBuy   SettlementKind = "buy"
	SettleTrade SettlementKind = "trade"
)

// PendingSettlement is the single outstanding external transfer a session waits on.
type PendingSettlement struct {
	Kind        SettlementKind `json:"kind"`
	FromAddress string         `json:"from"`
	ToAddress   string         `json:"to"`
	Amount      *big.Int       `json:"amountRaw"`
	TileId      int            `json:"tileId"`
	OfferId     string         `json:"offerId,omitempty"`
	Buyer       int            `json:"buyer"`
	Seller      int            `json:"seller"` // -1 for buys from the bank
	Price       int            `json:"price"`
}

func (p *PendingSettlement) Clone() *PendingSettlement {
	if p == nil {
		return nil
	}
	c := *p
	if p.Amount != nil {
		c.Amount = new(big.Int).Set(p.Amount)
	}
	return &c
}

// TransferRequest asks the verification collaborator to confirm an external
// transfer of at least MinAmount from From to To.
type TransferRequest struct {
	Reference        string
	From             string
	To               string
	MinAmount        *big.Int
	MinConfirmations uint64
}

type TransferResult struct {
	OK     bool
	Reason string
}
