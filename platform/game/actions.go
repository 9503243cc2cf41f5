package game

import (
	"fmt"
	"strings"

	"github.com/DedS3t/flarepoly-backend/app/models"
)

const (
	ActionRoll         = "roll"
	ActionBuy          = "buy"
	ActionSkipBuy      = "skip_buy"
	ActionCreateOffer  = "create_offer"
	ActionAcceptOffer  = "accept_offer"
	ActionDeclineOffer = "decline_offer"
	ActionSettle       = "settle"
)

// Action is one signed, state-mutating player action. Name and Params are
// what the player signs.
type Action interface {
	Name() string
	Params() string
	isAction()
}

type Roll struct{}

type Buy struct {
	TileID *int
}

type SkipBuy struct{}

type CreateOffer struct {
	Kind   models.OfferKind
	To     int
	TileID int
	Price  int
}

type AcceptOffer struct {
	OfferID string
}

type DeclineOffer struct {
	OfferID string
}

type Settle struct {
	TxHash string
}

func (Roll) Name() string         { return ActionRoll }
func (Buy) Name() string          { return ActionBuy }
func (SkipBuy) Name() string      { return ActionSkipBuy }
func (CreateOffer) Name() string  { return ActionCreateOffer }
func (AcceptOffer) Name() string  { return ActionAcceptOffer }
func (DeclineOffer) Name() string { return ActionDeclineOffer }
func (Settle) Name() string       { return ActionSettle }

func (Roll) Params() string    { return "" }
func (SkipBuy) Params() string { return "" }

func (a Buy) Params() string {
	if a.TileID == nil {
		return ""
	}
	return fmt.Sprintf("tileId=%d", *a.TileID)
}

func (a CreateOffer) Params() string {
	return fmt.Sprintf("type=%s;to=%d;tileId=%d;price=%d", a.Kind, a.To, a.TileID, a.Price)
}

func (a AcceptOffer) Params() string  { return "offerId=" + a.OfferID }
func (a DeclineOffer) Params() string { return "offerId=" + a.OfferID }

func (a Settle) Params() string {
	return "txHash=" + strings.ToLower(strings.TrimSpace(a.TxHash))
}

func (Roll) isAction()         {}
func (Buy) isAction()          {}
func (SkipBuy) isAction()      {}
func (CreateOffer) isAction()  {}
func (AcceptOffer) isAction()  {}
func (DeclineOffer) isAction() {}
func (Settle) isAction()       {}

// ConnectWallet binds a wallet to a seat. The proof must sign ExpectedMessage,
// a challenge issued out of band.
type ConnectWallet struct {
	PlayerIndex     int
	Proof           models.SigProof
	ExpectedMessage string
}
