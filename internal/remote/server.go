package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"worship-presenter/internal/app"
)

// Server exposes the deck and show state over HTTP and pushes changes to
// WebSocket clients. One server per editor process.
type Server struct {
	cfg   Config
	state *app.State
	hub   *Hub
	log   *slog.Logger
	srv   *http.Server
}

// NewServer wires a server to the application state. State change events
// are forwarded to connected clients immediately.
func NewServer(cfg Config, state *app.State, log *slog.Logger) *Server {
	s := &Server{
		cfg:   cfg,
		state: state,
		hub:   NewHub(log),
		log:   log,
	}

	state.On(app.EventShowChanged, func(data interface{}) {
		s.hub.Broadcast(Event{Type: EventTypeShow, Payload: state.Show()})
	})
	deckChanged := func(interface{}) {
		s.hub.Broadcast(Event{Type: EventTypeDeck, Payload: state.DeckSnapshot()})
	}
	state.On(app.EventDeckChanged, deckChanged)
	state.On(app.EventLayersChanged, deckChanged)

	return s
}

// Routes builds the HTTP routing table.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/deck", s.handleDeck).Methods("GET")
	r.HandleFunc("/api/show", s.handleShow).Methods("GET")
	r.HandleFunc("/api/show/start", s.showCommand(s.state.StartShow)).Methods("POST")
	r.HandleFunc("/api/show/stop", s.showCommand(s.state.StopShow)).Methods("POST")
	r.HandleFunc("/api/show/next", s.showCommand(s.state.NextSlide)).Methods("POST")
	r.HandleFunc("/api/show/prev", s.showCommand(s.state.PrevSlide)).Methods("POST")
	r.HandleFunc("/api/show/blank", s.showCommand(s.state.ToggleBlank)).Methods("POST")
	r.HandleFunc("/api/show/goto/{index}", s.handleGoto).Methods("POST")
	r.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	return r
}

// Start begins serving in a background goroutine. The context cancels the
// hub's client connections on shutdown.
func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		s.log.Info("remote server starting", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("remote server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.log.Info("remote server shutting down")
	return s.srv.Shutdown(ctx)
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.state.DeckSnapshot())
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.state.Show())
}

func (s *Server) showCommand(cmd func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd()
		s.writeJSON(w, s.state.Show())
	}
}

func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid slide index", http.StatusBadRequest)
		return
	}
	s.state.GotoSlide(index)
	s.writeJSON(w, s.state.Show())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Remote clients live on the local network; origin checks would
		// reject stage-display hardware with no Origin header.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn("websocket accept failed", "error", err)
		return
	}

	welcome := []Event{
		{Type: EventTypeDeck, Payload: s.state.DeckSnapshot()},
		{Type: EventTypeShow, Payload: s.state.Show()},
	}
	s.hub.serve(r.Context(), conn, welcome)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}
