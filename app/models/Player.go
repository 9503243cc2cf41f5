package models

// Player is owned by a session. Nonce counts consumed action signatures.
type Player struct {
	Index      int    `json:"index"`
	Position   int    `json:"position"`
	Balance    int    `json:"balance"`
	SkipTurns  int    `json:"skipTurns"`
	Eliminated bool   `json:"eliminated"`
	Address    string `json:"address,omitempty"`
	Nonce      uint64 `json:"nonce"`
}

func (p *Player) Connected() bool {
	return p.Address != ""
}
