package engine

import (
	"strings"

	"github.com/jromang/picochess/internal/chess"
)

// SAN renders m, one of legal, in standard algebraic notation for board.
// Pieces are disambiguated by file, then rank, then both; promotions use
// "=Q"; check and mate get "+" and "#".
func SAN(board *chess.Board, m *chess.Move, legal []*chess.Move, variant Variant) string {
	var sb strings.Builder

	switch m.Class {
	case chess.NullMove:
		return chess.NullMoveString
	case chess.KingsideCastle:
		sb.WriteString("O-O")
	case chess.QueensideCastle:
		sb.WriteString("O-O-O")
	default:
		if m.PieceToMove == chess.Pawn {
			if m.IsCapture() {
				sb.WriteByte(byte(m.FromCol))
				sb.WriteByte('x')
			}
			sb.WriteString(m.To())
			if m.IsPromotion() {
				sb.WriteByte('=')
				sb.WriteByte(m.PromotedPiece.Letter())
			}
		} else {
			sb.WriteByte(m.PieceToMove.Letter())
			sb.WriteString(disambiguation(m, legal))
			if m.IsCapture() {
				sb.WriteByte('x')
			}
			sb.WriteString(m.To())
		}
	}

	after := board.Copy()
	applyMove(after, m)
	if IsInCheck(after, after.ToMove) {
		if HasLegalMoves(after, variant) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from other legal moves of the same piece type to the same square.
func disambiguation(m *chess.Move, legal []*chess.Move) string {
	var ambiguities, sameRank, sameFile int
	for _, other := range legal {
		if other == m || other.IsCastle() || other.PieceToMove != m.PieceToMove {
			continue
		}
		if other.ToCol != m.ToCol || other.ToRank != m.ToRank {
			continue
		}
		if other.FromCol == m.FromCol && other.FromRank == m.FromRank {
			continue
		}
		ambiguities++
		if other.FromRank == m.FromRank {
			sameRank++
		}
		if other.FromCol == m.FromCol {
			sameFile++
		}
	}

	switch {
	case ambiguities == 0:
		return ""
	case sameRank > 0 && sameFile > 0:
		return m.From()
	case sameFile > 0:
		return string(byte(m.FromRank))
	default:
		return string(byte(m.FromCol))
	}
}

// UCIMove renders m for a UCI engine. Chess960 castling is written as the
// king capturing its own rook.
func UCIMove(m *chess.Move, variant Variant) string {
	if variant == Chess960 && m.IsCastle() {
		return m.From() + chess.SquareName(m.RookCol, m.FromRank)
	}
	return m.UCI()
}
