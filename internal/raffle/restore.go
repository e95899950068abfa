package raffle

import "fmt"

// Restore loads every stored drawing back into memory, typically at process
// start. Test drawings never reach the gateway, so they are absent from the
// restored state by construction.
func (s *Service) Restore() (int, error) {
	if s.gateway == nil {
		return 0, nil
	}
	drawings, err := s.gateway.LoadAll()
	if err != nil {
		return 0, persistErr("load drawings", err)
	}
	restored := 0
	for _, d := range drawings {
		if err := s.restoreDrawing(d); err != nil {
			return restored, err
		}
		restored++
	}
	return restored, nil
}

func (s *Service) restoreDrawing(d *Drawing) error {
	if d == nil {
		return fmt.Errorf("restore: nil drawing: %w", ErrInvalidArgument)
	}
	next := 1
	for i := range d.Entries {
		if d.Entries[i].EntrantNumber >= next {
			next = d.Entries[i].EntrantNumber + 1
		}
	}
	d.nextEntrant = next
	handle := &drawingHandle{d: d}
	if d.State == StateArchived {
		s.store.moveToArchived(d.Community, handle)
		return nil
	}
	if err := s.store.insert(handle); err != nil {
		return fmt.Errorf("restore drawing %q: %w", d.Name, err)
	}
	return nil
}
