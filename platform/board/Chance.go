package board

import "github.com/DedS3t/flarepoly-backend/app/models"

// DefaultChance is the weighted chance table drawn on chance tiles.
func DefaultChance() []models.ChanceCard {
	return []models.ChanceCard{
		{Text: "Airdrop reward", Delta: 250, Weight: 2},
		{Text: "Validator reward", Delta: 150, Weight: 2},
		{Text: "Referral bonus", Delta: 100, Weight: 3},
		{Text: "Gas spike fee", Delta: -100, Weight: 3},
		{Text: "Slashed for downtime", Delta: -200, Weight: 2},
	}
}

// TotalWeight sums the weights of a chance table.
func TotalWeight(cards []models.ChanceCard) int {
	total := 0
	for _, c := range cards {
		total += c.Weight
	}
	return total
}

// Pick maps a roll in [0, TotalWeight) onto a card.
func Pick(cards []models.ChanceCard, roll int) models.ChanceCard {
	for _, c := range cards {
		if roll < c.Weight {
			return c
		}
		roll -= c.Weight
	}
	return cards[len(cards)-1]
}
