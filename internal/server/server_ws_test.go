package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drawing-bot/internal/config"

	"github.com/gorilla/websocket"
)

func TestStatusWebsocketInitialSnapshot(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	createDrawing(t, ts, "guild-1", "rumble")

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/communities/guild-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snapshot struct {
		Community string `json:"community"`
		Drawings  []struct {
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"drawings"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snapshot.Community != "guild-1" {
		t.Fatalf("expected community guild-1, got %s", snapshot.Community)
	}
	if len(snapshot.Drawings) != 1 || snapshot.Drawings[0].Name != "rumble" {
		t.Fatalf("expected snapshot with drawing rumble, got %+v", snapshot.Drawings)
	}
}

func TestStatusWebsocketBroadcastOnChange(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	createDrawing(t, ts, "guild-1", "rumble")

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/communities/guild-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}

	resp := doRequest(t, ts, http.MethodPost, "/api/communities/guild-1/drawings/rumble/open", map[string]any{
		"actor": adminPayload("admin"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if !strings.Contains(string(data), `"open"`) {
		t.Fatalf("expected broadcast with open state, got %s", data)
	}
}
