package raffle

// Gateway mirrors drawings to durable storage. Implementations must return
// ErrNotFound for missing records, distinct from empty results. The service
// never calls the gateway for test drawings.
type Gateway interface {
	// SaveDrawing inserts a new drawing and fills in its DBID.
	SaveDrawing(d *Drawing) error
	// UpdateDrawing writes the drawing's state, deadline and winner.
	UpdateDrawing(d *Drawing) error
	LoadDrawing(community, name string) (*Drawing, error)
	ListDrawings(community string, includeArchived bool) ([]*Drawing, error)
	// LoadAll returns every stored drawing, archived included, for restore.
	LoadAll() ([]*Drawing, error)
	// SaveEntry inserts a new entry and fills in its DBID.
	SaveEntry(d *Drawing, e *Entry) error
	MarkEliminated(d *Drawing, e *Entry) error
	SaveAdminRole(community, roleID string) error
	// LoadAdminRole returns ErrNotFound when no role is configured.
	LoadAdminRole(community string) (string, error)
}
