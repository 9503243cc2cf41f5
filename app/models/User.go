package models

// User is the seat a session token was issued for by connect_wallet.
type User struct {
	GameId  string `json:"game_id"`
	Player  int    `json:"player"`
	Address string `json:"address"`
}
