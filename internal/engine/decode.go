package engine

import (
	"strings"

	"github.com/jromang/picochess/internal/chess"
)

// moveText holds what a move string says about a move before it is
// matched against the legal moves of a position.
type moveText struct {
	class    chess.MoveClass // castles and null moves; PieceMove otherwise
	piece    chess.Piece     // Empty when no piece letter was given
	fromCol  chess.Col
	fromRank chess.Rank
	toCol    chess.Col
	toRank   chess.Rank
	promoted chess.Piece
}

// isCapture returns true if c is a capture or separator character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':' || c == '-'
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// decodeMove reads SAN, over-disambiguated SAN and long algebraic forms
// (Nf3, Ngf3, Ng1f3, g1f3, g1-f3, e7e8q, e8=Q, exd6 e.p., O-O, 0-0-0, --).
// Check marks and annotation glyphs are ignored.
func decodeMove(moveString string) (moveText, bool) {
	mt := moveText{class: chess.PieceMove, piece: chess.Empty, promoted: chess.Empty}

	s := strings.TrimRight(moveString, "+#!?")
	s = strings.TrimSuffix(s, "e.p.")
	s = strings.TrimSuffix(s, "ep")

	if s == chess.NullMoveString {
		mt.class = chess.NullMove
		return mt, true
	}

	if len(s) > 0 && isCastlingChar(s[0]) {
		count := 0
		for i := 0; i < len(s); i++ {
			switch {
			case isCastlingChar(s[i]):
				count++
			case s[i] == '-':
			default:
				return mt, false
			}
		}
		switch count {
		case 2:
			mt.class = chess.KingsideCastle
		case 3:
			mt.class = chess.QueensideCastle
		default:
			return mt, false
		}
		mt.piece = chess.King
		return mt, true
	}

	if len(s) > 0 && strings.IndexByte("NBRQK", s[0]) >= 0 {
		mt.piece = chess.PieceFromLetter(s[0])
		s = s[1:]
	}

	// Look for promotions: e8=Q, e8Q, e7e8q.
	if n := len(s); n >= 2 {
		if p := chess.PieceFromLetter(s[n-1]); p != chess.Empty && p != chess.Pawn && p != chess.King &&
			(chess.IsRank(s[n-2]) || s[n-2] == '=') {
			mt.promoted = p
			s = strings.TrimSuffix(s[:n-1], "=")
		}
	}

	var squares []byte
	for i := 0; i < len(s); i++ {
		if !isCapture(s[i]) {
			squares = append(squares, s[i])
		}
	}
	n := len(squares)
	if n < 2 || n > 4 || !chess.IsCol(squares[n-2]) || !chess.IsRank(squares[n-1]) {
		return mt, false
	}
	mt.toCol = chess.Col(squares[n-2])
	mt.toRank = chess.Rank(squares[n-1])

	for i, c := range squares[:n-2] {
		switch {
		case i == 0 && chess.IsCol(c):
			mt.fromCol = chess.Col(c)
		case chess.IsRank(c) && mt.fromRank == 0:
			mt.fromRank = chess.Rank(c)
		default:
			return mt, false
		}
	}
	return mt, true
}

// matches reports whether the legal move m is described by mt.
func (mt moveText) matches(m *chess.Move, variant Variant) bool {
	switch mt.class {
	case chess.KingsideCastle, chess.QueensideCastle:
		return m.Class == mt.class
	case chess.NullMove:
		return false
	}

	if m.IsCastle() {
		// Long algebraic castling names the king's squares, or in Chess960
		// the king capturing its own rook.
		if mt.fromCol != m.FromCol || mt.fromRank != m.FromRank || mt.toRank != m.ToRank {
			return false
		}
		if mt.piece != chess.Empty && mt.piece != chess.King {
			return false
		}
		if variant == Chess960 {
			return mt.toCol == m.RookCol
		}
		return mt.toCol == m.ToCol
	}

	if m.ToCol != mt.toCol || m.ToRank != mt.toRank {
		return false
	}
	if mt.fromCol != 0 && m.FromCol != mt.fromCol {
		return false
	}
	if mt.fromRank != 0 && m.FromRank != mt.fromRank {
		return false
	}
	if m.PromotedPiece != mt.promoted {
		return false
	}

	switch {
	case mt.piece != chess.Empty:
		return m.PieceToMove == mt.piece
	case mt.fromCol != 0 && mt.fromRank != 0:
		// Long algebraic without a piece letter: the squares say it all.
		return true
	default:
		return m.PieceToMove == chess.Pawn
	}
}
