package engine

import "github.com/jromang/picochess/internal/chess"

// applyMove plays a fully resolved move on board without any legality
// checks, updating castling rights, en passant state and the clocks.
func applyMove(board *chess.Board, m *chess.Move) {
	colour := board.ToMove

	switch m.Class {
	case chess.NullMove:
		board.EnPassant = false
		board.HalfmoveClock++

	case chess.KingsideCastle, chess.QueensideCastle:
		applyCastle(board, m, colour)

	default:
		piece := board.Get(m.FromCol, m.FromRank)
		target := board.Get(m.ToCol, m.ToRank)

		board.Set(m.FromCol, m.FromRank, chess.Empty)
		if m.Class == chess.EnPassantPawnMove {
			board.Set(m.ToCol, m.FromRank, chess.Empty)
		}
		if m.PromotedPiece != chess.Empty && m.PromotedPiece != chess.Off {
			piece = chess.MakeColouredPiece(colour, m.PromotedPiece)
		}
		board.Set(m.ToCol, m.ToRank, piece)

		switch chess.ExtractPiece(piece) {
		case chess.King:
			board.SetKingSquare(colour, m.ToCol, m.ToRank)
			board.ClearCastling(colour)
		case chess.Rook:
			if m.FromRank == homeRank(colour) {
				board.ClearCastlingRook(colour, m.FromCol)
			}
		}
		if chess.IsOccupied(target) && chess.ExtractPiece(target) == chess.Rook && m.ToRank == homeRank(colour.Opposite()) {
			board.ClearCastlingRook(colour.Opposite(), m.ToCol)
		}

		board.EnPassant = false
		if m.PieceToMove == chess.Pawn && abs(int(m.ToRank)-int(m.FromRank)) == 2 {
			board.EnPassant = true
			board.EPCol = m.FromCol
			board.EPRank = chess.Rank((int(m.FromRank) + int(m.ToRank)) / 2)
		}

		if m.PieceToMove == chess.Pawn || chess.IsOccupied(target) || m.Class == chess.EnPassantPawnMove {
			board.HalfmoveClock = 0
		} else {
			board.HalfmoveClock++
		}
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}

// applyCastle moves king and rook to their castled squares. The king and
// rook are lifted first since in Chess960 either may land on the other's
// starting square.
func applyCastle(board *chess.Board, m *chess.Move, colour chess.Colour) {
	rank := m.FromRank
	rookTo := chess.Col('d')
	if m.Class == chess.KingsideCastle {
		rookTo = 'f'
	}

	board.Set(m.FromCol, rank, chess.Empty)
	board.Set(m.RookCol, rank, chess.Empty)
	board.Set(m.ToCol, rank, chess.MakeColouredPiece(colour, chess.King))
	board.Set(rookTo, rank, chess.MakeColouredPiece(colour, chess.Rook))

	board.SetKingSquare(colour, m.ToCol, rank)
	board.ClearCastling(colour)
	board.EnPassant = false
	board.HalfmoveClock++
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
