// Package server serves a game session to web clients over HTTP and a
// websocket event channel.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/config"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/session"
)

const shutdownTimeout = 5 * time.Second

// Server owns one game session and the clients watching it. Every event
// and request touching the session is serialized on mu.
type Server struct {
	cfg   *config.Config
	log   *zap.Logger
	store session.Store
	hub   *Hub

	mu      sync.Mutex
	sess    *session.GameSession
	lastFen []byte

	upgrader websocket.Upgrader
	router   chi.Router
}

// New returns a server with a fresh session. A nil store keeps snapshots
// in memory.
func New(cfg *config.Config, store session.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if store == nil {
		store = session.NewMemoryStore(0)
	}
	s := &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		hub:   newHub(log),
		sess: session.New(uuid.New().String(), session.Options{
			Columns: cfg.Output.Columns,
			Logger:  log,
		}),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/event", s.handleEvents)
	r.Get("/dgt", s.handleDGT)
	r.Get("/info", s.handleInfo)
	r.Post("/channel", s.handleChannel)
	r.Get("/game.pgn", s.handleGamePGN)
	r.Get("/moves", s.handleMoves)
	r.Post("/navigate", s.handleNavigate)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SessionID returns the id snapshots are saved under.
func (s *Server) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.ID
}

// Resume replaces the session with the snapshot stored under id.
func (s *Server) Resume(ctx context.Context, id string) error {
	snap, err := s.store.Load(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	report := s.sess.Restore(snap)
	s.log.Info("session resumed",
		zap.String("session", id),
		zap.Int("unparsed", len(report.Unparsed())))
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr), zap.String("session", s.SessionID()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// checkOrigin accepts configured origins, or same-origin requests when no
// list is configured.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if allowed, configured := s.cfg.Server.OriginAllowed(origin); configured {
		return allowed
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// persist saves a snapshot of the session. Call with mu held.
func (s *Server) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.sess.Snapshot()); err != nil {
		s.log.Error("save session", zap.String("session", s.sess.ID), zap.Error(err))
	}
}

// fenEvent describes the current position. Call with mu held.
func (s *Server) fenEvent() Event {
	return Event{
		Event:  EventFen,
		FEN:    s.sess.FEN(),
		PGN:    s.sess.FullGame(),
		Moves:  s.sess.MoveListHTML(),
		Status: s.sess.Status(),
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	c := s.hub.register(conn)
	defer s.hub.unregister(c)

	s.mu.Lock()
	greeting := []Event{
		{Event: EventHeader, Headers: s.sess.Headers()},
		s.fenEvent(),
	}
	s.mu.Unlock()
	for _, ev := range greeting {
		raw, err := json.Marshal(ev)
		if err != nil {
			s.log.Error("encode event", zap.Error(err))
			return
		}
		s.hub.sendTo(c, raw)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket read", zap.String("client", c.id), zap.Error(err))
			}
			return
		}
		out, err := s.handleMessage(r.Context(), raw)
		if err != nil {
			s.log.Warn("event rejected", zap.String("client", c.id), zap.Error(err))
			continue
		}
		s.hub.Broadcast(out)
	}
}

// handleMessage applies one client event and returns what to broadcast.
func (s *Server) handleMessage(ctx context.Context, raw []byte) ([]byte, error) {
	ev, err := decodeEvent(raw)
	if err != nil {
		return nil, err
	}
	if relayed[ev.Event] {
		return raw, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Event {
	case EventFen:
		if report := s.sess.SyncPosition(ev.FEN, ev.PGN, ev.Play == "reload"); report != nil && !report.Clean() {
			s.log.Warn("synced game has unparsed moves", zap.Int("unparsed", len(report.Unparsed())))
		}
		s.lastFen = raw
	case EventGame:
		if err := s.sess.NewBoard(ev.FEN); err != nil {
			return nil, err
		}
	case EventHeader:
		s.sess.SetHeaders(ev.Headers)
	default:
		return nil, fmt.Errorf("%q: %w", ev.Event, errors.ErrUnknownEvent)
	}
	s.persist(ctx)

	return withFields(raw, map[string]string{
		"moves":  s.sess.MoveListHTML(),
		"status": s.sess.Status(),
	})
}

// broadcastEvent sends ev to every client.
func (s *Server) broadcastEvent(ev Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		s.log.Error("encode event", zap.Error(err))
		return
	}
	s.hub.Broadcast(raw)
}
