package serve

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/batch"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the plugin UI runs from an opaque origin
		return true
	},
}

// Server hosts one session document and drives the orchestrator from
// inbound channel messages. Populate operations are serialized: the
// document is single-writer.
type Server struct {
	logger       *slog.Logger
	hub          *Hub
	orchestrator *batch.Orchestrator

	mu        sync.Mutex
	selection []models.SceneNode
}

func NewServer(logger *slog.Logger, hub *Hub, orchestrator *batch.Orchestrator, selection []models.SceneNode) *Server {
	return &Server{
		logger:       logger,
		hub:          hub,
		orchestrator: orchestrator,
		selection:    selection,
	}
}

// Router builds the HTTP surface: the websocket channel and a health probe.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", s.handleWS)
	return r
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.hub.Add(ws)
	s.logger.Info("client connected", "clients", s.hub.Count())

	// selection state goes out on connect, like on every selection
	// change; the hub already includes this client
	s.mu.Lock()
	s.orchestrator.SelectionSnapshot(s.selection)
	s.mu.Unlock()

	for {
		var msg models.Message
		if err := ws.ReadJSON(&msg); err != nil {
			break
		}
		s.dispatch(msg)
	}

	s.hub.Remove(ws)
	s.logger.Info("client disconnected", "clients", s.hub.Count())
}

// dispatch routes one inbound request. Every populate request ends in
// exactly one terminal message emitted through the hub.
func (s *Server) dispatch(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case models.MsgGetSelection:
		s.orchestrator.SelectionSnapshot(s.selection)

	case models.MsgPopulateSingle:
		if msg.Fields == nil {
			s.hub.Emit(models.ErrorMessage("populate-single request carries no fields"))
			return
		}
		s.orchestrator.PopulateSingle(s.selection, *msg.Fields)

	case models.MsgPopulateBatch:
		if len(msg.Items) == 0 {
			s.hub.Emit(models.ErrorMessage("populate-batch request carries no items"))
			return
		}
		s.orchestrator.PopulateBatch(s.selection, msg.Items)

	default:
		s.logger.Warn("unknown message type", "type", msg.Type)
	}
}
