package engine

import (
	"fmt"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/errors"
)

// Position is a board plus the moves that led to it, able to take moves
// back. It is the oracle the importer, exporters and sessions play on.
type Position struct {
	board   *chess.Board
	variant Variant
	history []*chess.Board
}

// NewPosition creates a position from fen.
func NewPosition(fen string, variant Variant) (*Position, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Position{board: board, variant: variant}, nil
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	return &Position{board: NewInitialBoard(), variant: Standard}
}

// FEN returns the current position as FEN.
func (p *Position) FEN() string {
	return BoardToFEN(p.board)
}

// Turn returns the side to move.
func (p *Position) Turn() chess.Colour {
	return p.board.ToMove
}

// Variant returns the castling rules in force.
func (p *Position) Variant() Variant {
	return p.variant
}

// MoveNumber returns the full move number of the side to move.
func (p *Position) MoveNumber() uint {
	return p.board.MoveNumber
}

// Board returns a copy of the current board.
func (p *Position) Board() *chess.Board {
	return p.board.Copy()
}

// Clone returns an independent copy, history included.
func (p *Position) Clone() *Position {
	c := &Position{board: p.board.Copy(), variant: p.variant}
	c.history = append(c.history, p.history...)
	return c
}

// LegalMoves returns all legal moves with SAN filled in.
func (p *Position) LegalMoves() []*chess.Move {
	legal := GenerateLegalMoves(p.board, p.variant)
	for _, m := range legal {
		m.SAN = SAN(p.board, m, legal, p.variant)
	}
	return legal
}

// Move resolves forgiving move text against the legal moves and plays it.
// The position is unchanged on error.
func (p *Position) Move(text string) (*chess.Move, error) {
	mt, ok := decodeMove(text)
	if !ok {
		return nil, fmt.Errorf("%q: %w", text, errors.ErrIllegalMove)
	}
	return p.play(mt, text)
}

// MoveSquares plays the legal move between two squares. An empty
// promotion on a promoting move means a queen.
func (p *Position) MoveSquares(from, to string, promotion chess.Piece) (*chess.Move, error) {
	text := from + to
	if len(from) != 2 || len(to) != 2 {
		return nil, fmt.Errorf("%q: %w", text, errors.ErrIllegalMove)
	}
	if promotion == chess.Off {
		promotion = chess.Empty
	}
	mt := moveText{
		class:    chess.PieceMove,
		piece:    chess.Empty,
		fromCol:  chess.Col(from[0]),
		fromRank: chess.Rank(from[1]),
		toCol:    chess.Col(to[0]),
		toRank:   chess.Rank(to[1]),
		promoted: promotion,
	}
	m, err := p.play(mt, text)
	if err != nil && promotion == chess.Empty {
		mt.promoted = chess.Queen
		if qm, qerr := p.play(mt, text); qerr == nil {
			return qm, nil
		}
	}
	return m, err
}

// Replay plays a move produced by this package on a possibly different
// position, matching it by squares. Castles and null moves match by kind.
func (p *Position) Replay(m *chess.Move) (*chess.Move, error) {
	if m == nil {
		return nil, fmt.Errorf("no move: %w", errors.ErrIllegalMove)
	}
	switch {
	case m.IsNull():
		return p.play(moveText{class: chess.NullMove}, chess.NullMoveString)
	case m.IsCastle():
		return p.play(moveText{class: m.Class, piece: chess.King}, m.SAN)
	}
	mt := moveText{
		class:    chess.PieceMove,
		piece:    m.PieceToMove,
		fromCol:  m.FromCol,
		fromRank: m.FromRank,
		toCol:    m.ToCol,
		toRank:   m.ToRank,
		promoted: m.PromotedPiece,
	}
	if mt.promoted == chess.Off {
		mt.promoted = chess.Empty
	}
	return p.play(mt, m.UCI())
}

func (p *Position) play(mt moveText, text string) (*chess.Move, error) {
	if mt.class == chess.NullMove {
		m := &chess.Move{
			Class:         chess.NullMove,
			CapturedPiece: chess.Empty,
			PromotedPiece: chess.Empty,
			SAN:           chess.NullMoveString,
		}
		p.push(m)
		return m, nil
	}

	legal := GenerateLegalMoves(p.board, p.variant)
	var matches []*chess.Move
	for _, m := range legal {
		if mt.matches(m, p.variant) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q: %w", text, errors.ErrIllegalMove)
	case 1:
	default:
		return nil, fmt.Errorf("%q: %w", text, errors.ErrAmbiguousMove)
	}

	m := matches[0]
	m.SAN = SAN(p.board, m, legal, p.variant)
	p.push(m)
	return m, nil
}

func (p *Position) push(m *chess.Move) {
	p.history = append(p.history, p.board.Copy())
	applyMove(p.board, m)
}

// Undo takes back the last move played on this position.
func (p *Position) Undo() bool {
	n := len(p.history)
	if n == 0 {
		return false
	}
	p.board = p.history[n-1]
	p.history = p.history[:n-1]
	return true
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return IsInCheck(p.board, p.board.ToMove)
}

// IsCheckmate reports whether the side to move is mated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !HasLegalMoves(p.board, p.variant)
}

// IsStalemate reports whether the side to move has no moves but is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !HasLegalMoves(p.board, p.variant)
}

// IsInsufficientMaterial reports whether neither side can mate.
func (p *Position) IsInsufficientMaterial() bool {
	return HasInsufficientMaterial(p.board)
}

// IsThreefoldRepetition reports whether the current position occurred at
// least three times in the moves played on this position.
func (p *Position) IsThreefoldRepetition() bool {
	key := repetitionKey(p.board)
	count := 1
	for _, b := range p.history {
		if repetitionKey(b) == key {
			count++
		}
	}
	return count >= 3
}

// IsDraw covers the fifty move rule, stalemate, insufficient material and
// threefold repetition.
func (p *Position) IsDraw() bool {
	return p.board.HalfmoveClock >= 100 ||
		p.IsStalemate() ||
		p.IsInsufficientMaterial() ||
		p.IsThreefoldRepetition()
}
