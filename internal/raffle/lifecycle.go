package raffle

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CreateOptions carries the optional attributes of a new drawing.
type CreateOptions struct {
	// Deadline is advisory metadata; the core never enforces it.
	Deadline *time.Time
	// Test drawings live in memory only and are never persisted.
	Test bool
}

func (s *Service) CreateDrawing(community string, actor Actor, name string, opts CreateOptions) (DrawingSummary, error) {
	if err := s.authorize(community, actor); err != nil {
		return DrawingSummary{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DrawingSummary{}, fmt.Errorf("drawing name: %w", ErrInvalidArgument)
	}
	drawing := &Drawing{
		Community:   community,
		Name:        name,
		State:       StateCreated,
		CreatedAt:   timeNowUTC(),
		Deadline:    opts.Deadline,
		Test:        opts.Test,
		nextEntrant: 1,
	}
	handle := &drawingHandle{d: drawing}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	if err := s.store.insert(handle); err != nil {
		return DrawingSummary{}, fmt.Errorf("drawing %q: %w", name, err)
	}
	if !s.skipPersist(drawing) {
		if err := s.gateway.SaveDrawing(drawing); err != nil {
			s.store.remove(handle)
			return DrawingSummary{}, persistErr("save drawing", err)
		}
	}
	return drawing.summary(), nil
}

func (s *Service) OpenDrawing(community string, actor Actor, name string) (DrawingSummary, error) {
	return s.transition(community, actor, name, StateOpen, StateCreated, StateClosed)
}

func (s *Service) CloseDrawing(community string, actor Actor, name string) (DrawingSummary, error) {
	return s.transition(community, actor, name, StateClosed, StateOpen)
}

func (s *Service) transition(community string, actor Actor, name, next string, allowed ...string) (DrawingSummary, error) {
	if err := s.authorize(community, actor); err != nil {
		return DrawingSummary{}, err
	}
	var out DrawingSummary
	err := s.withDrawing(community, name, func(d *Drawing) error {
		if !stateIn(d.State, allowed...) {
			return stateErr(d)
		}
		prev := d.State
		d.State = next
		if !s.skipPersist(d) {
			if err := s.gateway.UpdateDrawing(d); err != nil {
				d.State = prev
				return persistErr("update drawing", err)
			}
		}
		out = d.summary()
		return nil
	})
	return out, err
}

// ArchiveDrawing retires a drawing. Terminal: the name becomes reusable and
// the entries turn into read-only history.
func (s *Service) ArchiveDrawing(community string, actor Actor, name string) (DrawingSummary, error) {
	if err := s.authorize(community, actor); err != nil {
		return DrawingSummary{}, err
	}
	handle, ok := s.store.get(community, name)
	if !ok {
		return DrawingSummary{}, fmt.Errorf("drawing %q: %w", name, ErrNotFound)
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	d := handle.d
	if !stateIn(d.State, StateClosed, StateDrawn) {
		return DrawingSummary{}, stateErr(d)
	}
	prev := d.State
	d.State = StateArchived
	if !s.skipPersist(d) {
		if err := s.gateway.UpdateDrawing(d); err != nil {
			d.State = prev
			return DrawingSummary{}, persistErr("update drawing", err)
		}
	}
	s.store.moveToArchived(community, handle)
	return d.summary(), nil
}

// SetDeadline replaces the advisory deadline. Allowed in any non-archived
// state since nothing in the core acts on it.
func (s *Service) SetDeadline(community string, actor Actor, name string, deadline *time.Time) (DrawingSummary, error) {
	if err := s.authorize(community, actor); err != nil {
		return DrawingSummary{}, err
	}
	var out DrawingSummary
	err := s.withDrawing(community, name, func(d *Drawing) error {
		if d.State == StateArchived {
			return stateErr(d)
		}
		prev := d.Deadline
		d.Deadline = deadline
		if !s.skipPersist(d) {
			if err := s.gateway.UpdateDrawing(d); err != nil {
				d.Deadline = prev
				return persistErr("update drawing", err)
			}
		}
		out = d.summary()
		return nil
	})
	return out, err
}

// DrawingStatus is a pure read.
func (s *Service) DrawingStatus(community, name string) (DrawingSummary, error) {
	var out DrawingSummary
	err := s.withDrawing(community, name, func(d *Drawing) error {
		out = d.summary()
		return nil
	})
	return out, err
}

// ListDrawings returns summaries ordered by name, then creation time so
// reused names of archived drawings keep a stable order.
func (s *Service) ListDrawings(community string, includeArchived bool) []DrawingSummary {
	handles := s.store.list(community, includeArchived)
	list := make([]DrawingSummary, 0, len(handles))
	for _, handle := range handles {
		handle.mu.Lock()
		list = append(list, handle.d.summary())
		handle.mu.Unlock()
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func stateIn(state string, allowed ...string) bool {
	for _, a := range allowed {
		if state == a {
			return true
		}
	}
	return false
}

func stateErr(d *Drawing) error {
	return fmt.Errorf("drawing %q is %s: %w", d.Name, d.State, ErrInvalidState)
}
