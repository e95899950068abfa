package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// statusHub fans community status updates out to connected watchers,
// one group per community.
type statusHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}

	// snapshotFn produces the payload broadcast to a community's group.
	// Set once by the server before any connection is accepted.
	snapshotFn func(community string) any
}

func newStatusHub() *statusHub {
	return &statusHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *statusHub) Add(community string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[community]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[community] = group
	}
	group[conn] = struct{}{}
}

func (h *statusHub) Remove(community string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[community]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, community)
	}
}

func (h *statusHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *statusHub) broadcastCommunity(community string) {
	h.mu.Lock()
	group := h.groups[community]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	snapshotFn := h.snapshotFn
	h.mu.Unlock()

	if len(conns) == 0 || snapshotFn == nil {
		return
	}
	data, err := json.Marshal(snapshotFn(community))
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(community, conn)
		}
	}
}

func (s *Server) handleStatusWebsocket(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected community=%s remote=%s", community, r.RemoteAddr)
	s.hub.Add(community, conn)
	s.hub.Send(conn, s.communitySnapshot(community))
	go s.readStatusWS(community, conn)
}

func (s *Server) readStatusWS(community string, conn *websocket.Conn) {
	defer s.hub.Remove(community, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected community=%s error=%v", community, err)
			return
		}
	}
}

func (s *Server) communitySnapshot(community string) any {
	summaries := s.svc.ListDrawings(community, false)
	payload := make([]summaryPayload, 0, len(summaries))
	for _, summary := range summaries {
		payload = append(payload, toSummaryPayload(summary))
	}
	return map[string]any{
		"community": community,
		"drawings":  payload,
	}
}
