package raffle

import "testing"

func TestRestoreRoundTrip(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway)
	openDrawingWithEntries(t, svc, "guild-1", "Rumble1",
		[]string{"alice"}, []string{"bob", "carol"})
	if _, err := svc.Eliminate("guild-1", adminActor, "Rumble1", 1); err != nil {
		t.Fatalf("eliminate: %v", err)
	}

	// simulated process restart: a fresh service over the same gateway
	restarted := newTestService(gateway)
	if n, err := restarted.Restore(); err != nil || n != 1 {
		t.Fatalf("restore: n=%d err=%v", n, err)
	}

	entries, err := restarted.ListEntries("guild-1", "Rumble1")
	if err != nil {
		t.Fatalf("list entries after restore: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 restored entries, got %d", len(entries))
	}
	if !entries[0].Eliminated || entries[1].Eliminated {
		t.Fatalf("elimination marks lost in restore: %+v", entries)
	}

	// numbering continues where it left off
	entry, err := restarted.AddEntry("guild-1", adminActor, "Rumble1", []string{"dave"})
	if err != nil {
		t.Fatalf("add entry after restore: %v", err)
	}
	if entry.EntrantNumber != 3 {
		t.Fatalf("expected entrant 3 after restore, got %d", entry.EntrantNumber)
	}
}

func TestTestDrawingsDoNotSurviveRestart(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway)
	mustCreate(t, svc, "guild-1", "Durable", CreateOptions{})
	mustCreate(t, svc, "guild-1", "Throwaway", CreateOptions{Test: true})
	mustOpen(t, svc, "guild-1", "Throwaway")
	mustAddEntry(t, svc, "guild-1", "Throwaway", "alice")

	// test drawings behave normally in memory
	if len(svc.ListDrawings("guild-1", false)) != 2 {
		t.Fatal("test drawing should be listed in-process")
	}

	restarted := newTestService(gateway)
	if _, err := restarted.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	list := restarted.ListDrawings("guild-1", true)
	if len(list) != 1 || list[0].Name != "Durable" {
		t.Fatalf("test drawing must not survive restart, got %+v", list)
	}
}

func TestRestoredArchivedStaysTerminal(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway)
	openDrawingWithEntries(t, svc, "guild-1", "Rumble1", []string{"alice"})
	if _, err := svc.CloseDrawing("guild-1", adminActor, "Rumble1"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := svc.ArchiveDrawing("guild-1", adminActor, "Rumble1"); err != nil {
		t.Fatalf("archive: %v", err)
	}

	restarted := newTestService(gateway)
	if _, err := restarted.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	_, err := restarted.OpenDrawing("guild-1", adminActor, "Rumble1")
	assertErrIs(t, err, ErrInvalidState)

	// the archived name is free for a new drawing
	if _, err := restarted.CreateDrawing("guild-1", adminActor, "Rumble1", CreateOptions{}); err != nil {
		t.Fatalf("create over archived name after restore: %v", err)
	}
}
