package models

// Snapshot is the complete, serializable view of a session handed to the
// transport and persistence layers.
type Snapshot struct {
	GameId            string             `json:"gameId"`
	Epoch             int                `json:"epoch"`
	Version           uint64             `json:"version"`
	ActivePlayer      int                `json:"activePlayerId"`
	Dice              [2]int             `json:"dice"`
	Players           []Player           `json:"players"`
	Ownership         map[int]int        `json:"ownership"`
	BuyPrompt         *BuyPrompt         `json:"pendingPrompt"`
	Offers            []TradeOffer       `json:"tradeOffers"`
	PendingSettlement *PendingSettlement `json:"pendingSettlement"`
	GameOver          bool               `json:"gameOver"`
	Winner            *int               `json:"winner"`
	Events            []Event            `json:"events"`
	Messages          []Message          `json:"messages"`
}
