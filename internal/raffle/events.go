package raffle

// EntryAdded is emitted after an entry is committed. The dispatcher turns it
// into direct notifications to the bound users.
type EntryAdded struct {
	Community     string
	Drawing       string
	EntrantNumber int
	Users         []string
}

// WinnerDrawn is emitted after a winner is recorded.
type WinnerDrawn struct {
	Community     string
	Drawing       string
	EntrantNumber int
	Users         []string
}

// Notifier receives notification events. Delivery is the caller's concern;
// the service never blocks on it.
type Notifier interface {
	EntryAdded(event EntryAdded)
	WinnerDrawn(event WinnerDrawn)
}

type noopNotifier struct{}

func (noopNotifier) EntryAdded(EntryAdded)   {}
func (noopNotifier) WinnerDrawn(WinnerDrawn) {}
