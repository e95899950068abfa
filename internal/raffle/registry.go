package raffle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyEntered reports a self-service join by a user who already holds
// an entry in the drawing.
var ErrAlreadyEntered = errors.New("user already entered")

// AddEntry registers one entry binding the given users (a team counts as a
// single entrant). Only permitted while the drawing is open; entrant numbers
// are strictly increasing and never reused.
func (s *Service) AddEntry(community string, actor Actor, name string, users []string) (Entry, error) {
	if err := s.authorize(community, actor); err != nil {
		return Entry{}, err
	}
	cleaned, err := cleanUsers(users)
	if err != nil {
		return Entry{}, err
	}
	return s.addEntry(community, name, cleaned)
}

// JoinDrawing is the self-service path onto the same registry primitive:
// any known actor may enter themselves, once per drawing.
func (s *Service) JoinDrawing(community string, actor Actor, name string) (Entry, error) {
	user := strings.TrimSpace(actor.ID)
	if user == "" {
		return Entry{}, fmt.Errorf("actor id: %w", ErrInvalidArgument)
	}
	return s.addEntry(community, name, []string{user})
}

func (s *Service) addEntry(community, name string, users []string) (Entry, error) {
	var out Entry
	err := s.withDrawing(community, name, func(d *Drawing) error {
		if d.State != StateOpen {
			return stateErr(d)
		}
		for _, entry := range d.Entries {
			for _, user := range users {
				if entry.hasUser(user) {
					return fmt.Errorf("user %s in drawing %q: %w", user, d.Name, ErrAlreadyEntered)
				}
			}
		}
		entry := Entry{
			EntrantNumber: d.nextEntrant,
			Users:         users,
		}
		if !s.skipPersist(d) {
			if err := s.gateway.SaveEntry(d, &entry); err != nil {
				return persistErr("save entry", err)
			}
		}
		d.Entries = append(d.Entries, entry)
		d.nextEntrant++
		out = copyEntry(entry)
		s.notify.EntryAdded(EntryAdded{
			Community:     community,
			Drawing:       d.Name,
			EntrantNumber: entry.EntrantNumber,
			Users:         append([]string(nil), users...),
		})
		return nil
	})
	return out, err
}

// Eliminate marks an entrant out of the running. The record stays (entrant
// numbers are never renumbered); eliminating an unknown or already
// eliminated entrant fails with ErrNotFound and changes nothing.
func (s *Service) Eliminate(community string, actor Actor, name string, entrantNumber int) (Entry, error) {
	if err := s.authorize(community, actor); err != nil {
		return Entry{}, err
	}
	var out Entry
	err := s.withDrawing(community, name, func(d *Drawing) error {
		if !stateIn(d.State, StateOpen, StateClosed) {
			return stateErr(d)
		}
		entry := d.findEntry(entrantNumber)
		if entry == nil || entry.Eliminated {
			return fmt.Errorf("entrant %d in drawing %q: %w", entrantNumber, d.Name, ErrNotFound)
		}
		at := timeNowUTC()
		entry.Eliminated = true
		entry.EliminatedAt = &at
		entry.EliminatedBy = actor.ID
		if !s.skipPersist(d) {
			if err := s.gateway.MarkEliminated(d, entry); err != nil {
				entry.Eliminated = false
				entry.EliminatedAt = nil
				entry.EliminatedBy = ""
				return persistErr("mark eliminated", err)
			}
		}
		out = copyEntry(*entry)
		return nil
	})
	return out, err
}

// ListEntries returns every entry of the drawing, eliminated included, in
// entrant-number order.
func (s *Service) ListEntries(community, name string) ([]Entry, error) {
	var out []Entry
	err := s.withDrawing(community, name, func(d *Drawing) error {
		out = make([]Entry, 0, len(d.Entries))
		for _, entry := range d.Entries {
			out = append(out, copyEntry(entry))
		}
		return nil
	})
	return out, err
}

// MyEntries returns the user's entries across the community's drawings,
// active drawings only unless includeArchived is set.
func (s *Service) MyEntries(community, user string, includeArchived bool) []UserEntry {
	handles := s.store.list(community, includeArchived)
	var out []UserEntry
	for _, handle := range handles {
		handle.mu.Lock()
		for _, entry := range handle.d.Entries {
			if entry.hasUser(user) {
				out = append(out, UserEntry{
					Drawing:      handle.d.Name,
					DrawingState: handle.d.State,
					Entry:        copyEntry(entry),
				})
			}
		}
		handle.mu.Unlock()
	}
	return out
}

func cleanUsers(users []string) ([]string, error) {
	cleaned := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, user := range users {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		if _, dup := seen[user]; dup {
			continue
		}
		seen[user] = struct{}{}
		cleaned = append(cleaned, user)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("entry users: %w", ErrInvalidArgument)
	}
	return cleaned, nil
}
