package raffle

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports malformed operation input. The dispatcher
// validates user input first, so hitting this means a caller bug.
var ErrInvalidArgument = errors.New("invalid argument")

// Service is the drawing lifecycle core. Every operation takes the community
// and the invoking actor, serializes on the targeted drawing, and either
// fully commits (memory and durable store) or fully aborts.
type Service struct {
	store   *Store
	gateway Gateway
	notify  Notifier
	rand    Rand
}

// NewService wires the core. gateway may be nil for a memory-only service;
// notify and randSource fall back to a no-op sink and crypto/rand.
func NewService(gateway Gateway, notify Notifier, randSource Rand) *Service {
	if notify == nil {
		notify = noopNotifier{}
	}
	if randSource == nil {
		randSource = CryptoRand{}
	}
	return &Service{
		store:   NewStore(),
		gateway: gateway,
		notify:  notify,
		rand:    randSource,
	}
}

func (s *Service) withDrawing(community, name string, fn func(d *Drawing) error) error {
	handle, ok := s.store.get(community, name)
	if !ok {
		return fmt.Errorf("drawing %q: %w", name, ErrNotFound)
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	return fn(handle.d)
}

// skipPersist reports whether the drawing must never reach the gateway.
func (s *Service) skipPersist(d *Drawing) bool {
	return s.gateway == nil || d.Test
}
