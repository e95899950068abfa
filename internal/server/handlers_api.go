package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"drawing-bot/internal/raffle"
)

type actorPayload struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
	Admin bool     `json:"admin"`
}

func (a actorPayload) actor() raffle.Actor {
	return raffle.Actor{ID: a.ID, Roles: a.Roles, Admin: a.Admin}
}

type createDrawingRequest struct {
	Actor    actorPayload `json:"actor"`
	Name     string       `json:"name"`
	Deadline *time.Time   `json:"deadline,omitempty"`
	Test     bool         `json:"test"`
}

type actorRequest struct {
	Actor actorPayload `json:"actor"`
}

type deadlineRequest struct {
	Actor    actorPayload `json:"actor"`
	Deadline *time.Time   `json:"deadline"`
}

type addEntryRequest struct {
	Actor actorPayload `json:"actor"`
	Users []string     `json:"users"`
}

type adminRoleRequest struct {
	Actor  actorPayload `json:"actor"`
	RoleID string       `json:"role_id"`
}

type summaryPayload struct {
	Community string     `json:"community"`
	Name      string     `json:"name"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Test      bool       `json:"test"`
	Entrants  int        `json:"entrants"`
	Remaining int        `json:"remaining"`
	Winner    int        `json:"winner,omitempty"`
}

type entryPayload struct {
	EntrantNumber int        `json:"entrant_number"`
	Users         []string   `json:"users"`
	Eliminated    bool       `json:"eliminated"`
	EliminatedAt  *time.Time `json:"eliminated_at,omitempty"`
	EliminatedBy  string     `json:"eliminated_by,omitempty"`
}

type userEntryPayload struct {
	Drawing      string       `json:"drawing"`
	DrawingState string       `json:"drawing_state"`
	Entry        entryPayload `json:"entry"`
}

func toSummaryPayload(s raffle.DrawingSummary) summaryPayload {
	return summaryPayload{
		Community: s.Community,
		Name:      s.Name,
		State:     s.State,
		CreatedAt: s.CreatedAt,
		Deadline:  s.Deadline,
		Test:      s.Test,
		Entrants:  s.Entrants,
		Remaining: s.Remaining,
		Winner:    s.Winner,
	}
}

func toEntryPayload(e raffle.Entry) entryPayload {
	return entryPayload{
		EntrantNumber: e.EntrantNumber,
		Users:         e.Users,
		Eliminated:    e.Eliminated,
		EliminatedAt:  e.EliminatedAt,
		EliminatedBy:  e.EliminatedBy,
	}
}

func (s *Server) handleCreateDrawing(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	var req createDrawingRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validateDrawingName(req.Name); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	deadline := req.Deadline
	if deadline == nil && s.cfg.DefaultDeadlineHours > 0 {
		fallback := time.Now().UTC().Add(time.Duration(s.cfg.DefaultDeadlineHours) * time.Hour)
		deadline = &fallback
	}
	summary, err := s.svc.CreateDrawing(community, req.Actor.actor(), req.Name, raffle.CreateOptions{
		Deadline: deadline,
		Test:     req.Test,
	})
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("drawing created community=%s drawing=%s test=%t", community, summary.Name, summary.Test)
	writeJSON(w, http.StatusCreated, toSummaryPayload(summary))
	s.hub.broadcastCommunity(community)
}

func (s *Server) handleListDrawings(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	summaries := s.svc.ListDrawings(community, includeArchived)
	payload := make([]summaryPayload, 0, len(summaries))
	for _, summary := range summaries {
		payload = append(payload, toSummaryPayload(summary))
	}
	writeJSON(w, http.StatusOK, map[string]any{"drawings": payload})
}

func (s *Server) handleDrawingStatus(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	summary, err := s.svc.DrawingStatus(community, r.PathValue("name"))
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryPayload(summary))
}

func (s *Server) handleOpenDrawing(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "opened", s.svc.OpenDrawing)
}

func (s *Server) handleCloseDrawing(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "closed", s.svc.CloseDrawing)
}

func (s *Server) handleArchiveDrawing(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, "archived", s.svc.ArchiveDrawing)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request, verb string, fn func(string, raffle.Actor, string) (raffle.DrawingSummary, error)) {
	community := r.PathValue("community")
	var req actorRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	summary, err := fn(community, req.Actor.actor(), r.PathValue("name"))
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("drawing %s community=%s drawing=%s", verb, community, summary.Name)
	writeJSON(w, http.StatusOK, toSummaryPayload(summary))
	s.hub.broadcastCommunity(community)
}

func (s *Server) handleSetDeadline(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	var req deadlineRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	summary, err := s.svc.SetDeadline(community, req.Actor.actor(), r.PathValue("name"), req.Deadline)
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("deadline set community=%s drawing=%s", community, summary.Name)
	writeJSON(w, http.StatusOK, toSummaryPayload(summary))
	s.hub.broadcastCommunity(community)
}

func (s *Server) handleDrawWinner(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	var req actorRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	winner, err := s.svc.DrawWinner(community, req.Actor.actor(), r.PathValue("name"))
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("winner drawn community=%s drawing=%s entrant=%d", community, r.PathValue("name"), winner.EntrantNumber)
	writeJSON(w, http.StatusOK, toEntryPayload(winner))
}

func (s *Server) handleWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := s.svc.Winner(r.PathValue("community"), r.PathValue("name"))
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryPayload(winner))
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	var req addEntryRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.svc.AddEntry(community, req.Actor.actor(), r.PathValue("name"), req.Users)
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("entry added community=%s drawing=%s entrant=%d users=%d", community, r.PathValue("name"), entry.EntrantNumber, len(entry.Users))
	writeJSON(w, http.StatusCreated, toEntryPayload(entry))
}

func (s *Server) handleJoinDrawing(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	var req actorRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.svc.JoinDrawing(community, req.Actor.actor(), r.PathValue("name"))
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("entrant joined community=%s drawing=%s entrant=%d", community, r.PathValue("name"), entry.EntrantNumber)
	writeJSON(w, http.StatusCreated, toEntryPayload(entry))
}

func (s *Server) handleEliminate(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil || number < 1 {
		writeError(w, http.StatusBadRequest, "invalid entrant number")
		return
	}
	var req actorRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.svc.Eliminate(community, req.Actor.actor(), r.PathValue("name"), number)
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("entrant eliminated community=%s drawing=%s entrant=%d by=%s", community, r.PathValue("name"), entry.EntrantNumber, entry.EliminatedBy)
	writeJSON(w, http.StatusOK, toEntryPayload(entry))
	s.hub.broadcastCommunity(community)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.ListEntries(r.PathValue("community"), r.PathValue("name"))
	if err != nil {
		writeRaffleError(w, err)
		return
	}
	payload := make([]entryPayload, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, toEntryPayload(entry))
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": payload})
}

func (s *Server) handleMyEntries(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	entries := s.svc.MyEntries(r.PathValue("community"), r.PathValue("user"), includeArchived)
	payload := make([]userEntryPayload, 0, len(entries))
	for _, ue := range entries {
		payload = append(payload, userEntryPayload{
			Drawing:      ue.Drawing,
			DrawingState: ue.DrawingState,
			Entry:        toEntryPayload(ue.Entry),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": payload})
}

func (s *Server) handleSetAdminRole(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	var req adminRoleRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.SetAdminRole(community, req.Actor.actor(), req.RoleID); err != nil {
		writeRaffleError(w, err)
		return
	}
	log.Printf("admin role set community=%s role=%s", community, req.RoleID)
	writeJSON(w, http.StatusOK, map[string]string{
		"community": community,
		"role_id":   req.RoleID,
	})
}
