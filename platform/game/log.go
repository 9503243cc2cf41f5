package game

import "github.com/DedS3t/flarepoly-backend/app/models"

// eventLog keeps the most recent cap events.
type eventLog struct {
	cap    int
	seq    uint64
	events []models.Event
}

func newEventLog(cap int) *eventLog {
	return &eventLog{cap: cap}
}

func (l *eventLog) add(e models.Event) {
	l.seq++
	e.Seq = l.seq
	l.events = append(l.events, e)
	if over := len(l.events) - l.cap; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
}

func (l *eventLog) snapshot() ([]models.Event, []models.Message) {
	events := make([]models.Event, len(l.events))
	copy(events, l.events)
	msgs := make([]models.Message, len(events))
	for i, e := range events {
		msgs[i] = e.Message()
	}
	return events, msgs
}

func (t *table) event(kind models.EventKind, player int) models.Event {
	return models.Event{Kind: kind, At: t.now(), Player: player, Counterparty: -1, Tile: -1}
}

func (t *table) record(e models.Event) {
	t.log.add(e)
}
