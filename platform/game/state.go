package game

import (
	"context"
	"fmt"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/dice"
)

// table is the mutable game state plus the rules acting on it. It is not safe
// for concurrent use; Session serializes every call.
type table struct {
	id  string
	cfg Config

	gate     *auth.Gate
	dice     dice.Source
	verifier Verifier
	rate     RateSource
	now      func() time.Time

	epoch     int
	version   uint64
	players   []models.Player
	ownership map[int]int
	prompt    *models.BuyPrompt
	offers    []models.TradeOffer
	pending   *models.PendingSettlement
	active    int
	lastRoll  [2]int
	gameOver  bool
	winner    *int
	log       *eventLog
}

func newTable(id string, cfg Config, deps Deps) *table {
	t := &table{
		id:       id,
		cfg:      cfg,
		gate:     deps.Gate,
		dice:     deps.Dice,
		verifier: deps.Verifier,
		rate:     deps.Rate,
		now:      deps.Now,
	}
	t.init()
	t.record(t.event(models.EventCreated, -1))
	return t
}

func (t *table) init() {
	start := t.cfg.Board.First(models.TileStart)
	t.players = make([]models.Player, t.cfg.Players)
	for i := range t.players {
		t.players[i] = models.Player{Index: i, Position: start, Balance: t.cfg.StartBalance}
	}
	t.ownership = map[int]int{}
	t.prompt = nil
	t.offers = nil
	t.pending = nil
	t.active = 0
	t.lastRoll = [2]int{}
	t.gameOver = false
	t.winner = nil
	t.log = newEventLog(t.cfg.LogCap)
}

func (t *table) reset() {
	t.epoch++
	t.init()
	t.record(t.event(models.EventReset, -1))
}

// ref identifies the game in signed messages. It changes on every reset so
// proofs signed before a reset cannot be replayed after it.
func (t *table) ref() string {
	return fmt.Sprintf("%s-%d", t.id, t.epoch)
}

func (t *table) player(idx int) (*models.Player, error) {
	if idx < 0 || idx >= len(t.players) {
		return nil, reject(ErrValidation, "player %d does not exist", idx)
	}
	return &t.players[idx], nil
}

func (t *table) snapshot() models.Snapshot {
	players := make([]models.Player, len(t.players))
	copy(players, t.players)

	owners := make(map[int]int, len(t.ownership))
	for k, v := range t.ownership {
		owners[k] = v
	}

	offers := make([]models.TradeOffer, len(t.offers))
	copy(offers, t.offers)

	var prompt *models.BuyPrompt
	if t.prompt != nil {
		p := *t.prompt
		prompt = &p
	}
	var winner *int
	if t.winner != nil {
		w := *t.winner
		winner = &w
	}

	events, msgs := t.log.snapshot()
	return models.Snapshot{
		GameId:            t.id,
		Epoch:             t.epoch,
		Version:           t.version,
		ActivePlayer:      t.active,
		Dice:              t.lastRoll,
		Players:           players,
		Ownership:         owners,
		BuyPrompt:         prompt,
		Offers:            offers,
		PendingSettlement: t.pending.Clone(),
		GameOver:          t.gameOver,
		Winner:            winner,
		Events:            events,
		Messages:          msgs,
	}
}

// apply authenticates and runs one signed action for the active player. The
// player's nonce is consumed only when the action is accepted.
func (t *table) apply(ctx context.Context, proof models.SigProof, a Action) error {
	if a == nil {
		return reject(ErrValidation, "missing action")
	}
	if t.gameOver {
		return reject(ErrGameOver, "game is over, only reset is allowed")
	}

	p := &t.players[t.active]
	if err := t.gate.CheckAction(t.ref(), p, a.Name(), a.Params(), proof); err != nil {
		return wrap(ErrAuthentication, err)
	}
	if _, settling := a.(Settle); t.pending != nil && !settling {
		return reject(ErrTurnOrder, "waiting for %s settlement of tile %d", t.pending.Kind, t.pending.TileId)
	}

	var err error
	switch a := a.(type) {
	case Roll:
		err = t.roll()
	case Buy:
		err = t.buy(ctx, a)
	case SkipBuy:
		err = t.skipBuy()
	case CreateOffer:
		err = t.createOffer(a)
	case AcceptOffer:
		err = t.acceptOffer(ctx, a)
	case DeclineOffer:
		err = t.declineOffer(a)
	case Settle:
		err = t.settle(ctx, a)
	default:
		err = reject(ErrValidation, "unknown action %q", a.Name())
	}
	if err != nil {
		return err
	}
	p.Nonce++
	return nil
}

// connectWallet binds the proof's wallet to a seat. It reports false when the
// seat already held that wallet.
func (t *table) connectWallet(c ConnectWallet) (bool, error) {
	if t.gameOver {
		return false, reject(ErrGameOver, "game is over, only reset is allowed")
	}
	if t.pending != nil {
		return false, reject(ErrTurnOrder, "waiting for %s settlement of tile %d", t.pending.Kind, t.pending.TileId)
	}
	p, err := t.player(c.PlayerIndex)
	if err != nil {
		return false, err
	}
	if err := t.gate.CheckConnect(c.Proof, c.ExpectedMessage); err != nil {
		return false, wrap(ErrAuthentication, err)
	}
	if p.Connected() {
		if auth.SameAddress(p.Address, c.Proof.Address) {
			return false, nil
		}
		return false, reject(ErrValidation, "player %d is already bound to another wallet", p.Index)
	}
	for _, other := range t.players {
		if auth.SameAddress(other.Address, c.Proof.Address) {
			return false, reject(ErrValidation, "wallet is already bound to player %d", other.Index)
		}
	}

	p.Address = c.Proof.Address
	e := t.event(models.EventWalletConnected, p.Index)
	e.Ref = p.Address
	t.record(e)
	return true, nil
}
