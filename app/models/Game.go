package models

import "time"

const (
	GameWaiting    = "false"
	GameInProgress = "in progress"
	GameOver       = "over"
)

// Game is the persisted record of one session.
type Game struct {
	Id        string `pg:",pk"`
	Name      string
	Status    string
	Winner    *int
	Snapshot  *Snapshot `pg:",type:jsonb"`
	UpdatedAt time.Time
}

type GameCreateDto struct {
	Name string `json:"name"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}
