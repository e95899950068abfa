package server

import (
	"errors"
	"net/http"

	"drawing-bot/internal/raffle"
	"drawing-bot/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templ.Handler(web.Home()).ServeHTTP(w, r)
}

func (s *Server) handleCommunityView(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	summaries := s.svc.ListDrawings(community, false)
	rows := make([]web.DrawingRow, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, web.DrawingRow{
			Name:      summary.Name,
			State:     summary.State,
			Entrants:  summary.Entrants,
			Remaining: summary.Remaining,
			Winner:    summary.Winner,
		})
	}
	templ.Handler(web.CommunityView(community, rows)).ServeHTTP(w, r)
}

func (s *Server) handleDrawingView(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	name := r.PathValue("name")
	if _, err := s.svc.DrawingStatus(community, name); err != nil {
		if errors.Is(err, raffle.ErrNotFound) {
			http.Redirect(w, r, "/communities/"+community, http.StatusFound)
			return
		}
		writeRaffleError(w, err)
		return
	}
	templ.Handler(web.DrawingView(community, name)).ServeHTTP(w, r)
}
