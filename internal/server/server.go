package server

import (
	"net/http"

	"drawing-bot/internal/config"
	"drawing-bot/internal/db"
	"drawing-bot/internal/raffle"

	"gorm.io/gorm"
)

// Server is the command dispatcher: it maps HTTP commands onto the raffle
// core, formats replies, and serves the read-only status pages. It never
// inspects core state directly.
type Server struct {
	svc *raffle.Service
	cfg config.Config
	hub *statusHub
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	hub := newStatusHub()
	var gateway raffle.Gateway
	if conn != nil {
		gateway = db.NewGateway(conn)
	}
	svc := raffle.NewService(gateway, &hubNotifier{hub: hub}, raffle.CryptoRand{})
	srv := &Server{
		svc: svc,
		cfg: cfg,
		hub: hub,
	}
	hub.snapshotFn = srv.communitySnapshot
	return srv
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /communities/{community}", s.handleCommunityView)
	mux.HandleFunc("GET /communities/{community}/drawings/{name}", s.handleDrawingView)
	mux.HandleFunc("GET /ws/communities/{community}", s.handleStatusWebsocket)

	mux.HandleFunc("POST /api/communities/{community}/drawings", s.handleCreateDrawing)
	mux.HandleFunc("GET /api/communities/{community}/drawings", s.handleListDrawings)
	mux.HandleFunc("GET /api/communities/{community}/drawings/{name}", s.handleDrawingStatus)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/open", s.handleOpenDrawing)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/close", s.handleCloseDrawing)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/archive", s.handleArchiveDrawing)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/draw", s.handleDrawWinner)
	mux.HandleFunc("GET /api/communities/{community}/drawings/{name}/winner", s.handleWinner)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/deadline", s.handleSetDeadline)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/join", s.handleJoinDrawing)
	mux.HandleFunc("GET /api/communities/{community}/drawings/{name}/entries", s.handleListEntries)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/entries", s.handleAddEntry)
	mux.HandleFunc("POST /api/communities/{community}/drawings/{name}/entries/{number}/eliminate", s.handleEliminate)
	mux.HandleFunc("GET /api/communities/{community}/users/{user}/entries", s.handleMyEntries)
	mux.HandleFunc("POST /api/communities/{community}/admin-role", s.handleSetAdminRole)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
