package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/raysh454/browserctl/internal/display"
	"github.com/raysh454/browserctl/internal/history"
	"github.com/raysh454/browserctl/internal/logging"
)

// Server is the HTTP + WebSocket control surface for the kiosk browser.
type Server struct {
	cfg      Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
	events   *eventHub
}

// NewServer creates a new Server around the injected collaborators.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Windows == nil {
		return nil, fmt.Errorf("window querier is required")
	}
	if cfg.Procs == nil {
		return nil, fmt.Errorf("process signaler is required")
	}
	if cfg.Handoff == nil {
		return nil, fmt.Errorf("handoff writer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("browser-control")
	}
	if cfg.WindowClass == "" {
		cfg.WindowClass = "chromium"
	}
	if cfg.KillPattern == "" {
		cfg.KillPattern = "chrome"
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:    cfg,
		router: r,
		logger: logger,
		events: newEventHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Post("/navigate", s.handleNavigate)
	r.Get("/health", s.handleHealth)
	r.Get("/history", s.handleHistory)
	r.Get("/ws/events", s.handleEventsWS)

	// The original shim answers 404 for any unknown method or path, so a
	// wrong-method hit on a known route must not surface chi's default 405.
	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleNavigate terminates the running browser so the external restart loop
// relaunches it against the requested URL. The flow is deliberately
// fire-and-forget past the window query: the handoff file is overwritten,
// the kill signal is sent, and success is reported without waiting for the
// browser to die or come back.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("reading navigate body", logging.Field{Key: "error", Value: err.Error()})
		writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: err.Error()})
		return
	}

	var req NavigateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Warn("decoding navigate body", logging.Field{Key: "error", Value: err.Error()})
		writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: err.Error()})
		return
	}

	if req.URL == "" {
		s.logger.Warn("navigate without url")
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	s.logger.Info("navigating", logging.Field{Key: "url", Value: req.URL})

	ids, err := s.cfg.Windows.Query(r.Context(), s.cfg.WindowClass)
	if err != nil {
		switch {
		case errors.Is(err, display.ErrTimeout):
			s.logger.Warn("window query timed out")
			writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: "Navigation timed out"})
		case errors.Is(err, display.ErrWindowNotFound):
			s.logger.Warn("browser window not found")
			writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: "Chrome window not found"})
		default:
			s.logger.Warn("window query error", logging.Field{Key: "error", Value: err.Error()})
			writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: err.Error()})
		}
		return
	}

	// The first id is only evidence that the browser is up. The kill below
	// targets the process name, not this window.
	windowID := ids[0]
	s.logger.Info("found browser window", logging.Field{Key: "window", Value: windowID})

	if err := s.cfg.Handoff.Write(req.URL); err != nil {
		s.logger.Error("writing handoff file", logging.Field{Key: "path", Value: s.cfg.Handoff.Path()}, logging.Field{Key: "error", Value: err.Error()})
		writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: err.Error()})
		return
	}

	s.logger.Info("killing browser to navigate", logging.Field{Key: "url", Value: req.URL}, logging.Field{Key: "pattern", Value: s.cfg.KillPattern})

	if err := s.cfg.Procs.Kill(r.Context(), s.cfg.KillPattern); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("kill signal timed out")
			writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: "Navigation timed out"})
			return
		}
		s.logger.Warn("kill signal error", logging.Field{Key: "error", Value: err.Error()})
		writeJSON(w, http.StatusInternalServerError, NavigateResponse{Success: false, Error: err.Error()})
		return
	}

	if s.cfg.History != nil {
		if err := s.cfg.History.Record(r.Context(), req.URL, windowID); err != nil {
			// Journaling must never fail the navigation.
			s.logger.Warn("recording navigation", logging.Field{Key: "error", Value: err.Error()})
		}
	}

	s.events.publish(NavigationEvent{
		ID:     uuid.New().String(),
		URL:    req.URL,
		Window: windowID,
		Time:   time.Now().UTC(),
	})

	s.logger.Info("browser restart initiated", logging.Field{Key: "url", Value: req.URL})
	writeJSON(w, http.StatusOK, NavigateResponse{Success: true, URL: req.URL})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	if s.cfg.History == nil {
		writeJSON(w, http.StatusOK, []history.Entry{})
		return
	}

	entries, err := s.cfg.History.List(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing navigations", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("listed navigations", logging.Field{Key: "count", Value: len(entries)})
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

// --- WebSockets ---

func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	ch := s.events.subscribe()
	defer s.events.unsubscribe(ch)

	// Read pump: the client never sends data, but reading is how we learn
	// the connection is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-ch:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
