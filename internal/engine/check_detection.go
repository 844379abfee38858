package engine

import "github.com/jromang/picochess/internal/chess"

var (
	knightOffsets   = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs    = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs  = append(append([][2]int{}, diagonalDirs...), straightDirs...)
	promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}
)

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingCol, kingRank := board.KingSquare(colour)

	// If king position not tracked, search for it
	if kingCol == 0 || kingRank == 0 || board.Get(kingCol, kingRank) != chess.MakeColouredPiece(colour, chess.King) {
		kingCol, kingRank = findKing(board, colour)
		if kingCol == 0 {
			return false
		}
	}

	return isSquareAttacked(board, kingCol, kingRank, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Col, chess.Rank) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) == king {
				return col, rank
			}
		}
	}
	return 0, 0
}

// offset returns the square displaced by d, and whether it is on the board.
func offset(col chess.Col, rank chess.Rank, d [2]int) (chess.Col, chess.Rank, bool) {
	c := chess.Col(int(col) + d[0])
	r := chess.Rank(int(rank) + d[1])
	return c, r, chess.OnBoard(c, r)
}

// isSquareAttacked returns true if the square is attacked by the given colour.
func isSquareAttacked(board *chess.Board, col chess.Col, rank chess.Rank, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, relative to their direction.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnDir := -chess.ColourOffset(byColour)
	for _, dc := range []int{-1, 1} {
		if c, r, ok := offset(col, rank, [2]int{dc, pawnDir}); ok && board.Get(c, r) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, d := range knightOffsets {
		if c, r, ok := offset(col, rank, d); ok && board.Get(c, r) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, d := range kingOffsets {
		if c, r, ok := offset(col, rank, d); ok && board.Get(c, r) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	if slidingAttack(board, col, rank, diagonalDirs, chess.MakeColouredPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return slidingAttack(board, col, rank, straightDirs, chess.MakeColouredPiece(byColour, chess.Rook), queen)
}

// slidingAttack looks along each direction for the first piece and reports
// whether it is one of the two attackers.
func slidingAttack(board *chess.Board, col chess.Col, rank chess.Rank, dirs [][2]int, a, b chess.Piece) bool {
	for _, dir := range dirs {
		c, r, ok := offset(col, rank, dir)
		for ok {
			piece := board.Get(c, r)
			if piece != chess.Empty {
				if piece == a || piece == b {
					return true
				}
				break // Blocked
			}
			c, r, ok = offset(c, r, dir)
		}
	}
	return false
}
