package raffle

import (
	"errors"
	"sync"
	"testing"
)

var (
	adminActor  = Actor{ID: "admin", Admin: true}
	plainActor  = Actor{ID: "pleb"}
	helperActor = Actor{ID: "helper", Roles: []string{"raffle-crew"}}
)

// fakeGateway keeps durable state as deep copies so a second service built
// on the same gateway behaves like a process restart.
type fakeGateway struct {
	mu       sync.Mutex
	nextID   uint
	drawings map[uint]*Drawing
	roles    map[string]string
	failOp   string
	failErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		drawings: make(map[uint]*Drawing),
		roles:    make(map[string]string),
	}
}

func (g *fakeGateway) failOn(op string) {
	g.failOp = op
	g.failErr = errors.New("gateway down")
}

func (g *fakeGateway) check(op string) error {
	if g.failOp == op {
		return g.failErr
	}
	return nil
}

func (g *fakeGateway) SaveDrawing(d *Drawing) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check("save drawing"); err != nil {
		return err
	}
	g.nextID++
	d.DBID = g.nextID
	g.drawings[d.DBID] = cloneDrawing(d)
	return nil
}

func (g *fakeGateway) UpdateDrawing(d *Drawing) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check("update drawing"); err != nil {
		return err
	}
	stored, ok := g.drawings[d.DBID]
	if !ok {
		return ErrNotFound
	}
	stored.State = d.State
	stored.Deadline = d.Deadline
	stored.Winner = d.Winner
	return nil
}

func (g *fakeGateway) LoadDrawing(community, name string) (*Drawing, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, stored := range g.drawings {
		if stored.Community == community && normalizeName(stored.Name) == normalizeName(name) && stored.State != StateArchived {
			return cloneDrawing(stored), nil
		}
	}
	return nil, ErrNotFound
}

func (g *fakeGateway) ListDrawings(community string, includeArchived bool) ([]*Drawing, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*Drawing
	for _, stored := range g.drawings {
		if stored.Community != community {
			continue
		}
		if stored.State == StateArchived && !includeArchived {
			continue
		}
		out = append(out, cloneDrawing(stored))
	}
	return out, nil
}

func (g *fakeGateway) LoadAll() ([]*Drawing, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*Drawing
	for _, stored := range g.drawings {
		out = append(out, cloneDrawing(stored))
	}
	return out, nil
}

func (g *fakeGateway) SaveEntry(d *Drawing, e *Entry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check("save entry"); err != nil {
		return err
	}
	stored, ok := g.drawings[d.DBID]
	if !ok {
		return ErrNotFound
	}
	g.nextID++
	e.DBID = g.nextID
	stored.Entries = append(stored.Entries, copyEntry(*e))
	return nil
}

func (g *fakeGateway) MarkEliminated(d *Drawing, e *Entry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check("mark eliminated"); err != nil {
		return err
	}
	stored, ok := g.drawings[d.DBID]
	if !ok {
		return ErrNotFound
	}
	entry := stored.findEntry(e.EntrantNumber)
	if entry == nil {
		return ErrNotFound
	}
	entry.Eliminated = true
	entry.EliminatedAt = e.EliminatedAt
	entry.EliminatedBy = e.EliminatedBy
	return nil
}

func (g *fakeGateway) SaveAdminRole(community, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.check("save admin role"); err != nil {
		return err
	}
	g.roles[community] = roleID
	return nil
}

func (g *fakeGateway) LoadAdminRole(community string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	role, ok := g.roles[community]
	if !ok {
		return "", ErrNotFound
	}
	return role, nil
}

func cloneDrawing(d *Drawing) *Drawing {
	out := *d
	out.Entries = make([]Entry, 0, len(d.Entries))
	for _, entry := range d.Entries {
		out.Entries = append(out.Entries, copyEntry(entry))
	}
	if d.Deadline != nil {
		deadline := *d.Deadline
		out.Deadline = &deadline
	}
	return &out
}

// scriptedRand returns the configured picks in order, then repeats the last.
type scriptedRand struct {
	picks []int
	calls int
}

func (r *scriptedRand) Intn(n int) int {
	pick := 0
	if len(r.picks) > 0 {
		i := r.calls
		if i >= len(r.picks) {
			i = len(r.picks) - 1
		}
		pick = r.picks[i]
	}
	r.calls++
	if pick >= n {
		pick = n - 1
	}
	return pick
}

type recordingNotifier struct {
	mu      sync.Mutex
	added   []EntryAdded
	winners []WinnerDrawn
}

func (n *recordingNotifier) EntryAdded(event EntryAdded) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.added = append(n.added, event)
}

func (n *recordingNotifier) WinnerDrawn(event WinnerDrawn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.winners = append(n.winners, event)
}

func newTestService(gateway Gateway) *Service {
	return NewService(gateway, nil, &scriptedRand{})
}

func mustCreate(t *testing.T, svc *Service, community, name string, opts CreateOptions) {
	t.Helper()
	if _, err := svc.CreateDrawing(community, adminActor, name, opts); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
}

func mustOpen(t *testing.T, svc *Service, community, name string) {
	t.Helper()
	if _, err := svc.OpenDrawing(community, adminActor, name); err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
}

func mustAddEntry(t *testing.T, svc *Service, community, name string, users ...string) Entry {
	t.Helper()
	entry, err := svc.AddEntry(community, adminActor, name, users)
	if err != nil {
		t.Fatalf("add entry %v to %s: %v", users, name, err)
	}
	return entry
}

func openDrawingWithEntries(t *testing.T, svc *Service, community, name string, teams ...[]string) {
	t.Helper()
	mustCreate(t, svc, community, name, CreateOptions{})
	mustOpen(t, svc, community, name)
	for _, team := range teams {
		mustAddEntry(t, svc, community, name, team...)
	}
}

func assertErrIs(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func assertErrAs(t *testing.T, err error, target any) {
	t.Helper()
	if !errors.As(err, target) {
		t.Fatalf("expected %T, got %v", target, err)
	}
}
