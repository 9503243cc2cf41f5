package models

import (
	"fmt"
	"time"
)

type EventKind string

const (
	EventCreated          EventKind = "created"
	EventReset            EventKind = "reset"
	EventWalletConnected  EventKind = "wallet-connected"
	EventRolled           EventKind = "rolled"
	EventSkipped          EventKind = "skipped"
	EventPassedStart      EventKind = "passed-start"
	EventSentToPrison     EventKind = "sent-to-prison"
	EventPrison           EventKind = "prison"
	EventServerDown       EventKind = "server-down"
	EventChance           EventKind = "chance"
	EventTax              EventKind = "tax"
	EventRent             EventKind = "rent"
	EventBuyPrompt        EventKind = "buy-prompt"
	EventBought           EventKind = "bought"
	EventBuySkipped       EventKind = "buy-skipped"
	EventOfferCreated     EventKind = "offer-created"
	EventOfferDeclined    EventKind = "offer-declined"
	EventOfferInvalidated EventKind = "offer-invalidated"
	EventTraded           EventKind = "traded"
	EventSettlementOpened EventKind = "settlement-opened"
	EventSettled          EventKind = "settled"
	EventEliminated       EventKind = "eliminated"
	EventGameOver         EventKind = "game-over"
	EventTurn             EventKind = "turn"
)

// Event is one structured log entry. Only the fields relevant to Kind are set;
// Counterparty and Tile are -1 when unused.
type Event struct {
	Seq          uint64    `json:"seq"`
	Kind         EventKind `json:"kind"`
	At           time.Time `json:"at"`
	Player       int       `json:"player"`
	Counterparty int       `json:"counterparty"`
	Tile         int       `json:"tile"`
	Amount       int       `json:"amount"`
	Dice         [2]int    `json:"dice"`
	From         int       `json:"from"`
	To           int       `json:"to"`
	Text         string    `json:"text,omitempty"`
	Ref          string    `json:"ref,omitempty"`
}

// Message is the display form of an Event.
type Message struct {
	User string `json:"user"`
	Text string `json:"text"`
}

func (e Event) String() string {
	p := fmt.Sprintf("Player %d", e.Player+1)
	c := fmt.Sprintf("Player %d", e.Counterparty+1)
	switch e.Kind {
	case EventCreated:
		return "Game created"
	case EventReset:
		return "Game reset"
	case EventWalletConnected:
		return fmt.Sprintf("%s connected wallet %s", p, e.Ref)
	case EventRolled:
		return fmt.Sprintf("%s rolled %d (%d+%d) and moved %d -> %d", p, e.Dice[0]+e.Dice[1], e.Dice[0], e.Dice[1], e.From, e.To)
	case EventSkipped:
		return fmt.Sprintf("%s skips this turn (%d left)", p, e.Amount)
	case EventPassedStart:
		return fmt.Sprintf("%s passed START and collected %d FC", p, e.Amount)
	case EventSentToPrison:
		return fmt.Sprintf("%s was sent to prison (tile %d)", p, e.Tile)
	case EventPrison:
		return fmt.Sprintf("%s landed in prison and skips a turn", p)
	case EventServerDown:
		return fmt.Sprintf("%s hit server downtime and skips a turn", p)
	case EventChance:
		return fmt.Sprintf("%s: %s (%+d FC)", p, e.Text, e.Amount)
	case EventTax:
		return fmt.Sprintf("%s paid %d FC %s", p, e.Amount, e.Text)
	case EventRent:
		return fmt.Sprintf("%s paid %d FC rent to %s for tile %d", p, e.Amount, c, e.Tile)
	case EventBuyPrompt:
		return fmt.Sprintf("%s may buy tile %d for %d FC", p, e.Tile, e.Amount)
	case EventBought:
		return fmt.Sprintf("%s bought tile %d for %d FC", p, e.Tile, e.Amount)
	case EventBuySkipped:
		return fmt.Sprintf("%s skipped buying tile %d", p, e.Tile)
	case EventOfferCreated:
		return fmt.Sprintf("Offer %s: %s -> %s %s tile %d for %d FC", e.Ref, p, c, e.Text, e.Tile, e.Amount)
	case EventOfferDeclined:
		return fmt.Sprintf("%s declined offer %s", p, e.Ref)
	case EventOfferInvalidated:
		return fmt.Sprintf("Offer %s removed: owner of tile %d changed", e.Ref, e.Tile)
	case EventTraded:
		return fmt.Sprintf("Deal: tile %d %s -> %s for %d FC", e.Tile, c, p, e.Amount)
	case EventSettlementOpened:
		return fmt.Sprintf("Waiting for %s settlement of tile %d (%s raw)", e.Text, e.Tile, e.Ref)
	case EventSettled:
		return fmt.Sprintf("Settlement confirmed by tx %s", e.Ref)
	case EventEliminated:
		return fmt.Sprintf("%s is bankrupt and eliminated", p)
	case EventGameOver:
		return fmt.Sprintf("Game over: %s wins", p)
	case EventTurn:
		return fmt.Sprintf("%s's turn", p)
	}
	return string(e.Kind)
}

func (e Event) Message() Message {
	return Message{User: "System", Text: e.String()}
}
