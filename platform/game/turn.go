package game

import (
	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/board"
)

// advanceTurn passes the turn to the next player still in the game, wrapping
// at most once.
func (t *table) advanceTurn() {
	if t.gameOver {
		return
	}
	n := len(t.players)
	for i := 1; i <= n; i++ {
		next := (t.active + i) % n
		if !t.players[next].Eliminated {
			t.active = next
			t.record(t.event(models.EventTurn, next))
			return
		}
	}
}

// blocked reports why the active player cannot roll or open an offer.
func (t *table) blocked() error {
	if t.prompt != nil && t.prompt.PlayerIndex == t.active {
		return reject(ErrTurnOrder, "buy or skip tile %d first", t.prompt.TileId)
	}
	for _, o := range t.offers {
		if o.ToPlayer == t.active {
			return reject(ErrTurnOrder, "answer offer %s first", o.Id)
		}
	}
	return nil
}

func (t *table) roll() error {
	p := &t.players[t.active]
	if p.SkipTurns > 0 {
		p.SkipTurns--
		e := t.event(models.EventSkipped, p.Index)
		e.Amount = p.SkipTurns
		t.record(e)
		t.advanceTurn()
		return nil
	}
	if err := t.blocked(); err != nil {
		return err
	}

	d1, d2 := t.dice.Roll()
	steps := d1 + d2
	n := t.cfg.Board.Len()
	from := p.Position
	p.Position = (from + steps) % n
	t.lastRoll = [2]int{d1, d2}

	e := t.event(models.EventRolled, p.Index)
	e.Dice = t.lastRoll
	e.From, e.To = from, p.Position
	t.record(e)

	if laps := passes(from, steps, t.cfg.Board.First(models.TileStart), n); laps > 0 && t.cfg.StartBonus > 0 {
		t.credit(p.Index, laps*t.cfg.StartBonus)
		e := t.event(models.EventPassedStart, p.Index)
		e.Amount = laps * t.cfg.StartBonus
		t.record(e)
	}

	t.land(p)
	return nil
}

// passes counts how often a move of steps from from crosses or lands on start.
func passes(from, steps, start, n int) int {
	count := 0
	for k := 1; k <= steps; k++ {
		if (from+k)%n == start {
			count++
		}
	}
	return count
}

func (t *table) land(p *models.Player) {
	tile, _ := t.cfg.Board.Tile(p.Position)

	switch tile.Kind {
	case models.TileSendToPrison:
		prison := t.cfg.Board.First(models.TilePrison)
		p.Position = prison
		p.SkipTurns++
		e := t.event(models.EventSentToPrison, p.Index)
		e.Tile = prison
		t.record(e)

	case models.TilePrison:
		p.SkipTurns++
		t.record(t.event(models.EventPrison, p.Index))

	case models.TileAction:
		p.SkipTurns++
		t.record(t.event(models.EventServerDown, p.Index))

	case models.TileChance:
		total := board.TotalWeight(t.cfg.Chance)
		if total > 0 {
			card := board.Pick(t.cfg.Chance, t.dice.Intn(total))
			t.credit(p.Index, card.Delta)
			e := t.event(models.EventChance, p.Index)
			e.Text = card.Text
			e.Amount = card.Delta
			t.record(e)
			t.checkBankruptcy()
		}

	case models.TileTax:
		t.debit(p.Index, tile.RentOrFee)
		e := t.event(models.EventTax, p.Index)
		e.Amount = tile.RentOrFee
		e.Text = "for " + tile.Name
		t.record(e)
		t.checkBankruptcy()

	case models.TilePurchasable:
		owner, owned := t.ownership[tile.Id]
		if !owned {
			t.prompt = &models.BuyPrompt{PlayerIndex: p.Index, TileId: tile.Id, Price: tile.Price}
			e := t.event(models.EventBuyPrompt, p.Index)
			e.Tile = tile.Id
			e.Amount = tile.Price
			t.record(e)
			return
		}
		if owner != p.Index && tile.RentOrFee > 0 {
			t.debit(p.Index, tile.RentOrFee)
			t.credit(owner, tile.RentOrFee)
			e := t.event(models.EventRent, p.Index)
			e.Counterparty = owner
			e.Tile = tile.Id
			e.Amount = tile.RentOrFee
			t.record(e)
			t.checkBankruptcy()
		}
	}
	t.advanceTurn()
}
