package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/session"
)

// PositionResponse reports the session after a move or navigation.
type PositionResponse struct {
	FEN    string `json:"fen"`
	SAN    string `json:"san,omitempty"`
	Status string `json:"status"`
}

// StatusResponse is the get_status info.
type StatusResponse struct {
	Session  string `json:"session"`
	FEN      string `json:"fen"`
	Status   string `json:"status"`
	Moves    string `json:"moves"`
	Analysis string `json:"analysis"`
}

func (s *Server) handleDGT(w http.ResponseWriter, r *http.Request) {
	if action := r.URL.Query().Get("action"); action != "get_last_move" {
		writeError(w, http.StatusBadRequest, "unknown action "+action)
		return
	}
	s.mu.Lock()
	last := s.lastFen
	s.mu.Unlock()
	if last == nil {
		writeError(w, http.StatusNotFound, "no move yet")
		return
	}
	writeResponse(w, http.StatusOK, json.RawMessage(last))
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch action := r.URL.Query().Get("action"); action {
	case "get_headers":
		writeResponse(w, http.StatusOK, s.sess.Headers())
	case "get_status":
		writeResponse(w, http.StatusOK, StatusResponse{
			Session:  s.sess.ID,
			FEN:      s.sess.FEN(),
			Status:   s.sess.Status(),
			Moves:    s.sess.PreviousMoves(session.FormatSAN),
			Analysis: s.sess.AnalysisCommand(),
		})
	default:
		writeError(w, http.StatusBadRequest, "unknown action "+action)
	}
}

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
		return
	}
	switch action := r.FormValue("action"); action {
	case "move":
		s.channelMove(w, r)
	case "broadcast":
		s.mu.Lock()
		ev := Event{
			Event: EventBroadcast,
			Msg:   "Received position from Spectators!",
			PGN:   s.sess.FullGame(),
			FEN:   s.sess.FEN(),
		}
		s.mu.Unlock()
		s.broadcastEvent(ev)
		writeResponse(w, http.StatusOK, ev)
	default:
		writeError(w, http.StatusBadRequest, "unknown action "+action)
	}
}

func (s *Server) channelMove(w http.ResponseWriter, r *http.Request) {
	source, target := r.FormValue("source"), r.FormValue("target")
	promotion := chess.Off
	if p := r.FormValue("promotion"); p != "" {
		promotion = chess.PieceFromLetter(p[0])
	}

	s.mu.Lock()
	n, err := s.sess.UpdateCurrentPosition(source, target, promotion)
	if err != nil {
		s.mu.Unlock()
		s.log.Info("move rejected", zap.String("source", source), zap.String("target", target), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.persist(r.Context())
	ev := s.fenEvent()
	ev.Move = source + target
	resp := PositionResponse{FEN: s.sess.FEN(), SAN: n.SAN(), Status: ev.Status}
	s.mu.Unlock()

	s.broadcastEvent(ev)
	writeResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGamePGN(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pgn := s.sess.FullGame()
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	w.Header().Set("Content-Disposition", `attachment; filename="game.pgn"`)
	_, _ = w.Write([]byte(pgn + "\n"))
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	html := s.sess.MoveListHTML()
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.sess.Navigate(r.FormValue("to"), r.FormValue("fen"))
	switch {
	case stderrors.Is(err, errors.ErrUnknownPosition):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var san string
	if n := s.sess.Current(); n != nil {
		san = n.SAN()
	}
	writeResponse(w, http.StatusOK, PositionResponse{FEN: s.sess.FEN(), SAN: san, Status: s.sess.Status()})
}
