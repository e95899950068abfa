package server

import "log"

// Restore reloads persisted drawings into memory at startup. Memory-only
// servers skip it silently.
func (s *Server) Restore() error {
	count, err := s.svc.Restore()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("restore complete drawings=%d", count)
	}
	return nil
}
