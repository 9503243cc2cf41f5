package game

import (
	"testing"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sellerHarness leaves player 0 owning tile 7 in a local two player game,
// with an open sell offer to player 1 and player 1 to move.
func sellerHarness(t *testing.T) (*harness, models.TradeOffer) {
	t.Helper()
	h := newHarness(t, localConfig(2), [2]int{3, 4}, [2]int{6, 6}, [2]int{6, 6}, [2]int{5, 6})
	h.must(0, Roll{})
	h.must(0, Buy{})
	h.must(1, Roll{})
	snap := h.must(0, CreateOffer{Kind: models.OfferSell, To: 1, TileID: 7, Price: 100})
	require.Len(t, snap.Offers, 1)
	h.must(0, Roll{})
	require.Equal(t, 1, h.state().ActivePlayer)
	return h, snap.Offers[0]
}

func TestAcceptOfferLocal(t *testing.T) {
	h, offer := sellerHarness(t)
	before := h.state()

	snap := h.must(1, AcceptOffer{OfferID: offer.Id})

	assert.Equal(t, map[int]int{7: 1}, snap.Ownership)
	assert.Equal(t, before.Players[0].Balance+100, snap.Players[0].Balance)
	assert.Equal(t, before.Players[1].Balance-100, snap.Players[1].Balance)
	assert.Empty(t, snap.Offers)
	assert.Equal(t, 0, snap.ActivePlayer)
	traded, ok := lastEvent(snap, models.EventTraded)
	require.True(t, ok)
	assert.Equal(t, 1, traded.Player)
	assert.Equal(t, 0, traded.Counterparty)
}

func TestAcceptOfferNeedsFunds(t *testing.T) {
	h := newHarness(t, localConfig(2), [2]int{3, 4}, [2]int{6, 6}, [2]int{6, 6})
	h.must(0, Roll{})
	h.must(0, Buy{})
	h.must(1, Roll{})
	snap := h.must(0, CreateOffer{Kind: models.OfferSell, To: 1, TileID: 7, Price: 5000})
	h.must(0, Roll{})

	_, err := h.act(1, AcceptOffer{OfferID: snap.Offers[0].Id})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, h.state().Offers, 1)
}

func TestDeclineOffer(t *testing.T) {
	h, offer := sellerHarness(t)

	snap := h.must(1, DeclineOffer{OfferID: offer.Id})

	assert.Empty(t, snap.Offers)
	assert.Equal(t, map[int]int{7: 0}, snap.Ownership)
	assert.Equal(t, 0, snap.ActivePlayer)
}

func TestMissingOfferFailsCleanly(t *testing.T) {
	h, offer := sellerHarness(t)
	h.must(1, DeclineOffer{OfferID: offer.Id})
	h.must(0, Roll{})
	before := h.state()

	for _, a := range []Action{AcceptOffer{OfferID: offer.Id}, DeclineOffer{OfferID: "nope"}} {
		_, err := h.act(1, a)
		assert.ErrorIs(t, err, ErrValidation)
	}

	after := h.state()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Players, after.Players)
	assert.Equal(t, before.Ownership, after.Ownership)
}

func TestOnlyTheRecipientAnswers(t *testing.T) {
	h := newHarness(t, localConfig(3), [2]int{3, 4}, [2]int{6, 6}, [2]int{6, 6})
	h.must(0, Roll{})
	h.must(0, Buy{})
	h.must(1, Roll{})
	h.must(2, Roll{})
	snap := h.must(0, CreateOffer{Kind: models.OfferSell, To: 2, TileID: 7, Price: 10})
	h.must(0, Roll{})
	require.Equal(t, 1, h.state().ActivePlayer)

	_, err := h.act(1, AcceptOffer{OfferID: snap.Offers[0].Id})
	assert.ErrorIs(t, err, ErrTurnOrder)
	_, err = h.act(1, DeclineOffer{OfferID: snap.Offers[0].Id})
	assert.ErrorIs(t, err, ErrTurnOrder)
}

func TestBuyOfferSettlement(t *testing.T) {
	h := newHarness(t, settledConfig(2), [2]int{3, 4}, [2]int{6, 6}, [2]int{2, 3}, [2]int{3, 4})
	ownTileSeven(t, h)
	h.must(0, Roll{})

	t.Log("Given player 1 offers to buy tile 7 from player 0")
	snap := h.must(1, CreateOffer{Kind: models.OfferBuy, To: 0, TileID: 7, Price: 300})
	require.Len(t, snap.Offers, 1)
	offer := snap.Offers[0]
	h.must(1, Roll{})
	require.Equal(t, 0, h.state().ActivePlayer)

	t.Log("When player 0 accepts")
	snap = h.must(0, AcceptOffer{OfferID: offer.Id})

	t.Log("Then player 1 pays player 0")
	ps := snap.PendingSettlement
	require.NotNil(t, ps)
	assert.Equal(t, models.SettleTrade, ps.Kind)
	assert.Equal(t, h.addr(1), ps.FromAddress)
	assert.Equal(t, h.addr(0), ps.ToAddress)
	assert.Equal(t, 1, ps.Buyer)
	assert.Equal(t, 0, ps.Seller)
	assert.Equal(t, int64(300), ps.Amount.Int64())
	before := snap

	snap = h.must(0, Settle{TxHash: hashB})

	reqs := h.verifier.requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, h.addr(1), last.From)
	assert.Equal(t, h.addr(0), last.To)
	assert.Equal(t, map[int]int{7: 1}, snap.Ownership)
	assert.Equal(t, before.Players[0].Balance+300, snap.Players[0].Balance)
	assert.Equal(t, before.Players[1].Balance-300, snap.Players[1].Balance)
	assert.Empty(t, snap.Offers)
	assert.Nil(t, snap.PendingSettlement)
	assert.Equal(t, 1, snap.ActivePlayer)
}
