package server

import (
	"log"

	"drawing-bot/internal/raffle"
)

// hubNotifier pushes core events to the websocket hub so status pages
// refresh without polling. Broadcasts run on their own goroutine; events
// fire while the core still holds the drawing lock the snapshot needs.
type hubNotifier struct {
	hub *statusHub
}

func (n *hubNotifier) EntryAdded(ev raffle.EntryAdded) {
	log.Printf("event entry_added community=%s drawing=%s entrant=%d", ev.Community, ev.Drawing, ev.EntrantNumber)
	go n.hub.broadcastCommunity(ev.Community)
}

func (n *hubNotifier) WinnerDrawn(ev raffle.WinnerDrawn) {
	log.Printf("event winner_drawn community=%s drawing=%s entrant=%d", ev.Community, ev.Drawing, ev.EntrantNumber)
	go n.hub.broadcastCommunity(ev.Community)
}
