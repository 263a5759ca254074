package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server is the line's probe and observability endpoint:
//
//	/healthz  200 once heartbeats arrive, 503 when they stop or never started
//	/readyz   200 once the line is up, 503 before
//	/metrics  prometheus registry
//	/ws       websocket feed of live line state
type Server struct {
	state       *State
	hub         *Hub
	aliveWindow time.Duration
	httpServer  *http.Server
}

// NewServer wires the routes. Start and Shutdown manage the listener; tests
// mount Handler on httptest instead.
func NewServer(addr string, state *State, hub *Hub, aliveWindow time.Duration) *Server {
	s := &Server{
		state:       state,
		hub:         hub,
		aliveWindow: aliveWindow,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleLiveness)
	mux.HandleFunc("/readyz", s.handleReadiness)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ws", s.hub.ServeWs)
	return mux
}

// Start serves in a background goroutine until Shutdown.
func (s *Server) Start() {
	go func() {
		logrus.Infof("probe server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("probe server: %v", err)
		}
	}()
}

// Shutdown drains the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if s.state.Alive(s.aliveWindow) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return
	}
	http.Error(w, "liveness probe failed", http.StatusServiceUnavailable)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.state.Ready() {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return
	}
	http.Error(w, "not ready", http.StatusServiceUnavailable)
}
