package raffle

import "sync"

// Store holds the in-memory state for every community. The outer mutex only
// guards the maps; each drawing carries its own lock so operations on
// different drawings never serialize against each other.
type Store struct {
	mu          sync.Mutex
	communities map[string]*communityState
}

type communityState struct {
	active   map[string]*drawingHandle
	archived []*drawingHandle

	role       string
	roleKnown  bool // role value is authoritative (loaded or set)
	roleExists bool
}

type drawingHandle struct {
	mu sync.Mutex
	d  *Drawing
}

func NewStore() *Store {
	return &Store{
		communities: make(map[string]*communityState),
	}
}

func (s *Store) community(id string) *communityState {
	state, ok := s.communities[id]
	if !ok {
		state = &communityState{
			active: make(map[string]*drawingHandle),
		}
		s.communities[id] = state
	}
	return state
}

// insert registers a drawing handle under its normalized name. Fails when an
// active drawing already claims the name.
func (s *Store) insert(handle *drawingHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.community(handle.d.Community)
	key := normalizeName(handle.d.Name)
	if _, exists := state.active[key]; exists {
		return ErrDuplicateName
	}
	state.active[key] = handle
	return nil
}

// remove rolls back an insert that could not be made durable.
func (s *Store) remove(handle *drawingHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.communities[handle.d.Community]
	if !ok {
		return
	}
	key := normalizeName(handle.d.Name)
	if state.active[key] == handle {
		delete(state.active, key)
	}
}

// get resolves a name to a drawing handle, preferring the active drawing and
// falling back to the most recently archived one of that name.
func (s *Store) get(community, name string) (*drawingHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.communities[community]
	if !ok {
		return nil, false
	}
	key := normalizeName(name)
	if handle, ok := state.active[key]; ok {
		return handle, true
	}
	for i := len(state.archived) - 1; i >= 0; i-- {
		if normalizeName(state.archived[i].d.Name) == key {
			return state.archived[i], true
		}
	}
	return nil, false
}

// moveToArchived retires a drawing's name so it can be reused. The caller
// must already hold the handle lock with the state set to StateArchived.
func (s *Store) moveToArchived(community string, handle *drawingHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.community(community)
	key := normalizeName(handle.d.Name)
	if state.active[key] == handle {
		delete(state.active, key)
	}
	state.archived = append(state.archived, handle)
}

func (s *Store) list(community string, includeArchived bool) []*drawingHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.communities[community]
	if !ok {
		return nil
	}
	handles := make([]*drawingHandle, 0, len(state.active)+len(state.archived))
	for _, handle := range state.active {
		handles = append(handles, handle)
	}
	if includeArchived {
		handles = append(handles, state.archived...)
	}
	return handles
}

func (s *Store) roleConfig(community string) (role string, exists, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.communities[community]
	if !ok {
		return "", false, false
	}
	return state.role, state.roleExists, state.roleKnown
}

func (s *Store) setRoleConfig(community, role string, exists bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.community(community)
	state.role = role
	state.roleExists = exists
	state.roleKnown = true
}
