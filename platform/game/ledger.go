package game

import "github.com/DedS3t/flarepoly-backend/app/models"

func (t *table) credit(idx, amount int) {
	t.players[idx].Balance += amount
}

func (t *table) debit(idx, amount int) {
	t.players[idx].Balance -= amount
}

// transfer moves currency and tile ownership from seller to buyer in one step.
func (t *table) transfer(seller, buyer, tile, price int) {
	t.debit(buyer, price)
	t.credit(seller, price)
	t.ownership[tile] = buyer
}

// checkBankruptcy eliminates every player whose balance has reached zero or
// below, then ends the game when one player is left.
func (t *table) checkBankruptcy() {
	for i := range t.players {
		p := &t.players[i]
		if !p.Eliminated && p.Balance <= 0 {
			t.eliminate(p)
		}
	}

	alive := -1
	count := 0
	for _, p := range t.players {
		if !p.Eliminated {
			alive = p.Index
			count++
		}
	}
	if count <= 1 && !t.gameOver {
		t.finish(alive)
	}
}

// eliminate releases the player's tiles and drops every offer they are part of.
func (t *table) eliminate(p *models.Player) {
	p.Eliminated = true
	for tile, owner := range t.ownership {
		if owner == p.Index {
			delete(t.ownership, tile)
		}
	}
	kept := t.offers[:0]
	for _, o := range t.offers {
		if o.FromPlayer != p.Index && o.ToPlayer != p.Index {
			kept = append(kept, o)
		}
	}
	t.offers = kept
	if t.prompt != nil && t.prompt.PlayerIndex == p.Index {
		t.prompt = nil
	}
	t.record(t.event(models.EventEliminated, p.Index))
}

func (t *table) finish(winner int) {
	t.gameOver = true
	t.offers = nil
	t.pending = nil
	t.prompt = nil
	if winner >= 0 {
		t.winner = &winner
	}
	t.record(t.event(models.EventGameOver, winner))
}
