package chess

import "strings"

// Move is a fully resolved move as produced by the move oracle: the squares
// involved, the pieces, and its canonical SAN in the position it was played in.
type Move struct {
	Class MoveClass

	// Source square.
	FromCol  Col
	FromRank Rank

	// Destination square. For castling this is the king's destination.
	ToCol  Col
	ToRank Rank

	// RookCol is the castling rook's starting file.
	RookCol Col

	// The piece being moved.
	PieceToMove Piece

	// The piece captured (Empty if no capture).
	CapturedPiece Piece

	// The piece promoted to (Empty if not a promotion).
	PromotedPiece Piece

	// SAN text including any check or mate suffix.
	SAN string
}

// From returns the origin square name, "" for a null move.
func (m *Move) From() string {
	return SquareName(m.FromCol, m.FromRank)
}

// To returns the destination square name, "" for a null move.
func (m *Move) To() string {
	return SquareName(m.ToCol, m.ToRank)
}

// Promotion returns the lowercase promotion letter, or "".
func (m *Move) Promotion() string {
	if m.PromotedPiece == Empty || m.PromotedPiece == Off {
		return ""
	}
	return strings.ToLower(string(m.PromotedPiece.Letter()))
}

// UCI returns the move in long algebraic engine notation (e2e4, e7e8q).
// A null move is "0000".
func (m *Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From() + m.To() + m.Promotion()
}

// IsCapture returns true if this move is a capture.
func (m *Move) IsCapture() bool {
	return (m.CapturedPiece != Empty && m.CapturedPiece != Off) || m.Class == EnPassantPawnMove
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// IsNull returns true if this is a null move.
func (m *Move) IsNull() bool {
	return m.Class == NullMove
}
