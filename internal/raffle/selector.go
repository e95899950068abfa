package raffle

import "fmt"

// DrawWinner picks uniformly among the non-eliminated entries and records
// the result. The drawing moves to StateDrawn. A drawing that already has a
// winner fails with ErrAlreadyDrawn; there is no overwrite path.
func (s *Service) DrawWinner(community string, actor Actor, name string) (Entry, error) {
	if err := s.authorize(community, actor); err != nil {
		return Entry{}, err
	}
	var out Entry
	err := s.withDrawing(community, name, func(d *Drawing) error {
		if d.Winner != 0 {
			return fmt.Errorf("drawing %q: %w", d.Name, ErrAlreadyDrawn)
		}
		if !stateIn(d.State, StateOpen, StateClosed) {
			return stateErr(d)
		}
		pool := make([]*Entry, 0, len(d.Entries))
		for i := range d.Entries {
			if !d.Entries[i].Eliminated {
				pool = append(pool, &d.Entries[i])
			}
		}
		if len(pool) == 0 {
			return fmt.Errorf("drawing %q: %w", d.Name, ErrEmptyPool)
		}
		winner := pool[s.rand.Intn(len(pool))]
		prevState := d.State
		d.Winner = winner.EntrantNumber
		d.State = StateDrawn
		if !s.skipPersist(d) {
			if err := s.gateway.UpdateDrawing(d); err != nil {
				d.Winner = 0
				d.State = prevState
				return persistErr("update drawing", err)
			}
		}
		out = copyEntry(*winner)
		s.notify.WinnerDrawn(WinnerDrawn{
			Community:     community,
			Drawing:       d.Name,
			EntrantNumber: winner.EntrantNumber,
			Users:         append([]string(nil), winner.Users...),
		})
		return nil
	})
	return out, err
}

// Winner returns the recorded winner, or ErrNotFound when none has been
// drawn yet.
func (s *Service) Winner(community, name string) (Entry, error) {
	var out Entry
	err := s.withDrawing(community, name, func(d *Drawing) error {
		if d.Winner == 0 {
			return fmt.Errorf("winner of drawing %q: %w", d.Name, ErrNotFound)
		}
		entry := d.findEntry(d.Winner)
		if entry == nil {
			return fmt.Errorf("winner of drawing %q: %w", d.Name, ErrNotFound)
		}
		out = copyEntry(*entry)
		return nil
	})
	return out, err
}
