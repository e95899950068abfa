package raffle

import (
	"strings"
	"time"
)

// Drawing lifecycle states. Archived is terminal.
const (
	StateCreated  = "created"
	StateOpen     = "open"
	StateClosed   = "closed"
	StateDrawn    = "drawn"
	StateArchived = "archived"
)

// Actor identifies the user invoking an operation, as seen by the chat
// platform. Admin reflects platform-native administrator permission.
type Actor struct {
	ID    string
	Roles []string
	Admin bool
}

type Drawing struct {
	Community string
	Name      string
	State     string
	CreatedAt time.Time
	Deadline  *time.Time
	Test      bool
	Entries   []Entry
	Winner    int // entrant number, 0 until drawn
	DBID      uint

	nextEntrant int
}

type Entry struct {
	EntrantNumber int
	Users         []string
	Eliminated    bool
	EliminatedAt  *time.Time
	EliminatedBy  string
	DBID          uint
}

// DrawingSummary is the read-side view of a drawing.
type DrawingSummary struct {
	Community string
	Name      string
	State     string
	CreatedAt time.Time
	Deadline  *time.Time
	Test      bool
	Entrants  int
	Remaining int
	Winner    int
}

// UserEntry pairs an entry with the drawing it belongs to, for
// cross-drawing lookups.
type UserEntry struct {
	Drawing      string
	DrawingState string
	Entry        Entry
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (d *Drawing) summary() DrawingSummary {
	remaining := 0
	for i := range d.Entries {
		if !d.Entries[i].Eliminated {
			remaining++
		}
	}
	return DrawingSummary{
		Community: d.Community,
		Name:      d.Name,
		State:     d.State,
		CreatedAt: d.CreatedAt,
		Deadline:  d.Deadline,
		Test:      d.Test,
		Entrants:  len(d.Entries),
		Remaining: remaining,
		Winner:    d.Winner,
	}
}

func (d *Drawing) findEntry(entrantNumber int) *Entry {
	for i := range d.Entries {
		if d.Entries[i].EntrantNumber == entrantNumber {
			return &d.Entries[i]
		}
	}
	return nil
}

func (e Entry) hasUser(user string) bool {
	for _, u := range e.Users {
		if u == user {
			return true
		}
	}
	return false
}

func copyEntry(e Entry) Entry {
	out := e
	out.Users = append([]string(nil), e.Users...)
	if e.EliminatedAt != nil {
		at := *e.EliminatedAt
		out.EliminatedAt = &at
	}
	return out
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
