// Package session holds the per-board game state behind the web client:
// one game tree, the cursor into it and the rendered move list.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/export"
	"github.com/jromang/picochess/internal/parser"
	"github.com/jromang/picochess/internal/tree"
)

// boardGameHeader titles a game started by playing on an empty session.
const boardGameHeader = "<h4>Player (-) vs Player (-)</h4><h5>Board game</h5>"

// Options configure a GameSession.
type Options struct {
	// Columns wraps the plain PGN rendering, 0 for no wrapping.
	Columns int
	Logger  *zap.Logger
}

// GameSession is a game tree with a cursor. It is not safe for
// concurrent use.
type GameSession struct {
	ID string

	tree   *tree.Tree
	cursor tree.Cursor

	// fen is the position on the board. It follows the cursor and keeps
	// the last known position while the cursor is unset.
	fen string
	// placed is set once fen has come from a game or the client. Until
	// then a load starts at the game's first position.
	placed bool

	headerHTML string
	movesHTML  string

	columns int
	log     *zap.Logger
}

// New returns a session holding an empty game at the initial position.
func New(id string, opts Options) *GameSession {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &GameSession{
		ID:      id,
		columns: opts.Columns,
		log:     log.With(zap.String("session", id)),
	}
	s.reset(tree.New(engine.InitialFEN, engine.Standard))
	return s
}

func (s *GameSession) reset(t *tree.Tree) {
	s.tree = t
	s.cursor = tree.NewCursor(tree.Root)
	s.fen = t.Root().FEN
	s.headerHTML = ""
	s.render()
}

// render refreshes the cached HTML move list.
func (s *GameSession) render() {
	s.movesHTML = export.MoveList(s.tree, 0)
}

// Tree returns the game tree.
func (s *GameSession) Tree() *tree.Tree {
	return s.tree
}

// Cursor returns the cursor.
func (s *GameSession) Cursor() tree.Cursor {
	return s.cursor
}

// Current returns the node under the cursor, nil when unset.
func (s *GameSession) Current() *tree.Node {
	return s.cursor.Node(s.tree)
}

// FEN returns the position on the board.
func (s *GameSession) FEN() string {
	return s.fen
}

func (s *GameSession) followCursor() {
	if n := s.Current(); n != nil {
		s.fen = n.FEN
		s.placed = true
	}
}

// NewBoard discards the game and starts an empty one at fen.
func (s *GameSession) NewBoard(fen string) error {
	if _, err := engine.NewPosition(fen, engine.Standard); err != nil {
		return err
	}
	s.reset(tree.New(fen, engine.Standard))
	s.placed = true
	s.log.Debug("new board", zap.String("fen", fen))
	return nil
}

// LoadPGN replaces the game with the one in lines and resyncs the cursor
// to the current position. The cursor is unset when the new game does not
// reach that position. A session that never had a position starts at the
// game's first one.
func (s *GameSession) LoadPGN(lines []string) *parser.Report {
	var current string
	if s.placed {
		current = s.fen
	}
	res := parser.Load(lines, parser.LoadOptions{Logger: s.log, CurrentFEN: current})
	s.tree = res.Tree
	s.cursor = res.Cursor
	s.followCursor()
	s.headerHTML = export.WebGameHeader(s.tree.Headers)
	s.render()
	if !res.Report.Clean() {
		s.log.Info("game loaded with unparsed moves", zap.Int("unparsed", len(res.Report.Unparsed())))
	}
	return res.Report
}

// GoToStart moves the cursor to the root.
func (s *GameSession) GoToStart() {
	s.cursor.GoToStart()
	s.followCursor()
}

// GoToEnd moves the cursor to the end of the mainline.
func (s *GameSession) GoToEnd() {
	s.cursor.GoToEnd(s.tree)
	s.followCursor()
}

// GoForward follows the mainline one move.
func (s *GameSession) GoForward() bool {
	ok := s.cursor.GoForward(s.tree)
	s.followCursor()
	return ok
}

// GoBack takes the cursor back one move.
func (s *GameSession) GoBack() bool {
	ok := s.cursor.GoBack(s.tree)
	s.followCursor()
	return ok
}

// GoToPosition moves the cursor to the node indexed under fen. On a miss
// the cursor is unset and false is returned.
func (s *GameSession) GoToPosition(fen string) bool {
	ok := s.cursor.GoToPosition(s.tree, fen)
	if ok {
		s.followCursor()
	}
	return ok
}

// position replays the path to the cursor so the board knows its history.
func (s *GameSession) position() (*engine.Position, error) {
	pos, err := engine.NewPosition(s.tree.Root().FEN, s.tree.Variant)
	if err != nil || !s.cursor.IsSet() {
		return engine.NewPosition(s.fen, s.tree.Variant)
	}
	for _, id := range s.tree.Path(s.cursor.ID()) {
		if _, err := pos.Replay(s.tree.Node(id).Move); err != nil {
			return engine.NewPosition(s.fen, s.tree.Variant)
		}
	}
	return pos, nil
}

// UpdateCurrentPosition plays the move between two squares on the cursor's
// board. An existing child with the same SAN is reused, otherwise a new
// node is added. Either way the cursor moves onto it. A zero promotion
// means a queen.
func (s *GameSession) UpdateCurrentPosition(from, to string, promotion chess.Piece) (*tree.Node, error) {
	var (
		pos   *engine.Position
		fresh *tree.Tree
		err   error
	)
	if s.cursor.IsSet() {
		pos, err = s.position()
	} else {
		// Playing from an unknown position starts a new game there, once
		// the move is known to be legal.
		pos, err = engine.NewPosition(s.fen, engine.Standard)
		fresh = tree.New(s.fen, engine.Standard)
		fresh.Result = "*"
	}
	if err != nil {
		return nil, err
	}
	m, err := pos.MoveSquares(from, to, promotion)
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		s.reset(fresh)
		s.headerHTML = boardGameHeader
	}

	parent := s.cursor.ID()
	id, found := s.tree.FindChild(parent, m.SAN)
	if !found {
		id = s.tree.AddNewMove(m, m.SAN, parent, pos.FEN(), tree.Props{})
		s.render()
	}
	s.cursor = tree.NewCursor(id)
	s.followCursor()
	return s.Current(), nil
}

// SyncPosition brings the session to fen. When fen is not in the game, or
// reload is set, the game is replaced by pgn first.
func (s *GameSession) SyncPosition(fen, pgn string, reload bool) *parser.Report {
	if s.GoToPosition(fen) && !reload {
		return nil
	}
	s.fen = fen
	s.placed = true
	report := s.LoadPGN(strings.Split(pgn, "\n"))
	if !s.GoToPosition(fen) {
		s.log.Debug("position not in synced game", zap.String("fen", fen))
	}
	return report
}

// SetHeaders replaces the game's tags. The Result tag also sets the result.
func (s *GameSession) SetHeaders(h map[string]string) {
	s.tree.Headers = tree.HeadersFromMap(h, chess.SevenTagRoster)
	s.tree.Result = h[chess.ResultTag]
	s.headerHTML = export.WebGameHeader(s.tree.Headers)
	s.render()
}

// Headers returns a copy of the game's tags.
func (s *GameSession) Headers() map[string]string {
	return s.tree.Headers.Map()
}

// Result returns the game's result token.
func (s *GameSession) Result() string {
	return export.Result(s.tree)
}

// FullGame renders the game as PGN.
func (s *GameSession) FullGame() string {
	return export.FullGame(s.tree, s.columns)
}

// MoveListHTML renders the header, move list and result for the web client.
func (s *GameSession) MoveListHTML() string {
	return export.VariationTree(s.headerHTML, s.movesHTML, s.Result())
}

// Move list formats for PreviousMoves.
const (
	FormatUCI = "uci"
	FormatSAN = "san"
)

// PreviousMoves lists the moves from the root to the cursor, separated by
// spaces. The SAN format numbers white's moves. The UCI format stops at
// the first move that could not be resolved.
func (s *GameSession) PreviousMoves(format string) string {
	if !s.cursor.IsSet() {
		return ""
	}
	var parts []string
	for _, id := range s.tree.Path(s.cursor.ID()) {
		n := s.tree.Node(id)
		if format == FormatSAN {
			if n.HalfMoveNum%2 == 1 {
				parts = append(parts, strconv.Itoa(n.FullmoveNumber())+".")
			}
			if n.IsPlaceholder() {
				parts = append(parts, "X"+n.Raw)
			} else {
				parts = append(parts, n.SAN())
			}
			continue
		}
		if n.IsPlaceholder() {
			break
		}
		parts = append(parts, engine.UCIMove(n.Move, s.tree.Variant))
	}
	return strings.Join(parts, " ")
}

// AnalysisCommand returns the UCI position command for the cursor.
func (s *GameSession) AnalysisCommand() string {
	cmd := "position startpos"
	if root := s.tree.Root().FEN; root != engine.InitialFEN {
		cmd = "position fen " + root
	}
	if moves := s.PreviousMoves(FormatUCI); moves != "" {
		cmd += " moves " + moves
	}
	return cmd
}

// Status describes the position on the board.
func (s *GameSession) Status() string {
	pos, err := s.position()
	if err != nil {
		return ""
	}
	colour := "White"
	if pos.Turn() == chess.Black {
		colour = "Black"
	}
	switch {
	case pos.IsCheckmate():
		return colour + " is in checkmate"
	case pos.IsDraw():
		return "Drawn position"
	case pos.InCheck():
		return colour + " to move (in check)"
	}
	return colour + " to move"
}

// Navigation targets accepted by Navigate.
const (
	ToStart    = "start"
	ToEnd      = "end"
	ToForward  = "forward"
	ToBack     = "back"
	ToPosition = "fen"
)

// Navigate moves the cursor by target name. ToPosition jumps to fen and
// fails with ErrUnknownPosition when the game does not reach it.
func (s *GameSession) Navigate(target, fen string) error {
	switch target {
	case ToStart:
		s.GoToStart()
	case ToEnd:
		s.GoToEnd()
	case ToForward:
		s.GoForward()
	case ToBack:
		s.GoBack()
	case ToPosition:
		if !s.GoToPosition(fen) {
			return fmt.Errorf("%q: %w", fen, errors.ErrUnknownPosition)
		}
	default:
		return fmt.Errorf("navigate to %q: %w", target, errors.ErrUnknownEvent)
	}
	return nil
}
