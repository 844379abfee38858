package engine

import "github.com/jromang/picochess/internal/chess"

// GenerateLegalMoves returns every legal move for the side to move. SAN is
// not filled in; see SAN.
func GenerateLegalMoves(board *chess.Board, variant Variant) []*chess.Move {
	colour := board.ToMove
	var moves []*chess.Move
	for _, m := range generatePseudoMoves(board) {
		if tryMove(board, m, colour) {
			moves = append(moves, m)
		}
	}
	return append(moves, generateCastles(board, variant)...)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board, variant Variant) bool {
	for _, m := range generatePseudoMoves(board) {
		if tryMove(board, m, board.ToMove) {
			return true
		}
	}
	return len(generateCastles(board, variant)) > 0
}

// tryMove plays m on a copy and reports whether colour's king is safe afterwards.
func tryMove(board *chess.Board, m *chess.Move, colour chess.Colour) bool {
	tmp := board.Copy()
	applyMove(tmp, m)
	return !IsInCheck(tmp, colour)
}

// generatePseudoMoves lists moves that follow piece movement rules but may
// leave the king in check. Castling is handled separately.
func generatePseudoMoves(board *chess.Board) []*chess.Move {
	colour := board.ToMove
	moves := make([]*chess.Move, 0, 48)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
				continue
			}
			switch pieceType := chess.ExtractPiece(piece); pieceType {
			case chess.Pawn:
				moves = appendPawnMoves(moves, board, col, rank, colour)
			case chess.Knight:
				moves = appendStepMoves(moves, board, col, rank, pieceType, knightOffsets)
			case chess.King:
				moves = appendStepMoves(moves, board, col, rank, pieceType, kingOffsets)
			case chess.Bishop:
				moves = appendSlideMoves(moves, board, col, rank, pieceType, diagonalDirs)
			case chess.Rook:
				moves = appendSlideMoves(moves, board, col, rank, pieceType, straightDirs)
			case chess.Queen:
				moves = appendSlideMoves(moves, board, col, rank, pieceType, allSlidingDirs)
			}
		}
	}
	return moves
}

func newPieceMove(fromCol chess.Col, fromRank chess.Rank, toCol chess.Col, toRank chess.Rank, piece, captured chess.Piece) *chess.Move {
	class := chess.PieceMove
	if piece == chess.Pawn {
		class = chess.PawnMove
	}
	return &chess.Move{
		Class:         class,
		FromCol:       fromCol,
		FromRank:      fromRank,
		ToCol:         toCol,
		ToRank:        toRank,
		PieceToMove:   piece,
		CapturedPiece: captured,
		PromotedPiece: chess.Empty,
	}
}

// capturable returns the captured piece type for a move onto target, and
// whether the square can be entered at all.
func capturable(target chess.Piece, colour chess.Colour) (chess.Piece, bool) {
	if target == chess.Empty {
		return chess.Empty, true
	}
	if target == chess.Off || chess.ExtractColour(target) == colour {
		return chess.Empty, false
	}
	return chess.ExtractPiece(target), true
}

func appendStepMoves(moves []*chess.Move, board *chess.Board, col chess.Col, rank chess.Rank, piece chess.Piece, offsets [][2]int) []*chess.Move {
	for _, d := range offsets {
		c, r, ok := offset(col, rank, d)
		if !ok {
			continue
		}
		if captured, ok := capturable(board.Get(c, r), board.ToMove); ok {
			moves = append(moves, newPieceMove(col, rank, c, r, piece, captured))
		}
	}
	return moves
}

func appendSlideMoves(moves []*chess.Move, board *chess.Board, col chess.Col, rank chess.Rank, piece chess.Piece, dirs [][2]int) []*chess.Move {
	for _, d := range dirs {
		c, r, ok := offset(col, rank, d)
		for ok {
			captured, enter := capturable(board.Get(c, r), board.ToMove)
			if !enter {
				break
			}
			moves = append(moves, newPieceMove(col, rank, c, r, piece, captured))
			if captured != chess.Empty {
				break
			}
			c, r, ok = offset(c, r, d)
		}
	}
	return moves
}

func appendPawnMoves(moves []*chess.Move, board *chess.Board, col chess.Col, rank chess.Rank, colour chess.Colour) []*chess.Move {
	dir := chess.ColourOffset(colour)
	lastRank := homeRank(colour.Opposite())

	add := func(m *chess.Move) {
		if m.ToRank != lastRank {
			moves = append(moves, m)
			return
		}
		for _, promo := range promotionPieces {
			p := *m
			p.Class = chess.PawnMoveWithPromotion
			p.PromotedPiece = promo
			moves = append(moves, &p)
		}
	}

	// Forward moves
	if c, r, ok := offset(col, rank, [2]int{0, dir}); ok && board.Get(c, r) == chess.Empty {
		add(newPieceMove(col, rank, c, r, chess.Pawn, chess.Empty))
		startRank := chess.Rank(int(homeRank(colour)) + dir)
		if rank == startRank {
			if c2, r2, ok := offset(c, r, [2]int{0, dir}); ok && board.Get(c2, r2) == chess.Empty {
				add(newPieceMove(col, rank, c2, r2, chess.Pawn, chess.Empty))
			}
		}
	}

	// Captures
	for _, dc := range []int{-1, 1} {
		c, r, ok := offset(col, rank, [2]int{dc, dir})
		if !ok {
			continue
		}
		target := board.Get(c, r)
		if chess.IsOccupied(target) && chess.ExtractColour(target) != colour {
			add(newPieceMove(col, rank, c, r, chess.Pawn, chess.ExtractPiece(target)))
		} else if board.EnPassant && c == board.EPCol && r == board.EPRank {
			m := newPieceMove(col, rank, c, r, chess.Pawn, chess.Pawn)
			m.Class = chess.EnPassantPawnMove
			moves = append(moves, m)
		}
	}
	return moves
}

// generateCastles returns the legal castling moves for the side to move.
// The king always lands on the g- or c-file and the rook beside it on the
// f- or d-file. Every square the king or rook crosses must be empty apart
// from the two castling pieces, and the king may not start, pass or land
// on an attacked square. Standard mode additionally insists on the classic
// e-file king and corner rooks.
func generateCastles(board *chess.Board, variant Variant) []*chess.Move {
	colour := board.ToMove
	rank := homeRank(colour)
	kingCol, kingRank := board.KingSquare(colour)
	if kingRank != rank || board.Get(kingCol, rank) != chess.MakeColouredPiece(colour, chess.King) {
		return nil
	}
	if IsInCheck(board, colour) {
		return nil
	}

	var moves []*chess.Move
	for _, kingside := range []bool{true, false} {
		rookCol := board.CastleRook(colour, kingside)
		if rookCol == 0 || board.Get(rookCol, rank) != chess.MakeColouredPiece(colour, chess.Rook) {
			continue
		}
		kingTo, rookTo, class := chess.Col('c'), chess.Col('d'), chess.QueensideCastle
		if kingside {
			kingTo, rookTo, class = 'g', 'f', chess.KingsideCastle
		}
		if variant == Standard && (kingCol != 'e' || (kingside && rookCol != 'h') || (!kingside && rookCol != 'a')) {
			continue
		}
		if !castlePathClear(board, rank, kingCol, rookCol, kingTo, rookTo) {
			continue
		}
		if !castleKingSafe(board, colour, rank, kingCol, rookCol, kingTo) {
			continue
		}
		moves = append(moves, &chess.Move{
			Class:         class,
			FromCol:       kingCol,
			FromRank:      rank,
			ToCol:         kingTo,
			ToRank:        rank,
			RookCol:       rookCol,
			PieceToMove:   chess.King,
			CapturedPiece: chess.Empty,
			PromotedPiece: chess.Empty,
		})
	}
	return moves
}

func castlePathClear(board *chess.Board, rank chess.Rank, kingCol, rookCol, kingTo, rookTo chess.Col) bool {
	lo := min(kingCol, rookCol, kingTo, rookTo)
	hi := max(kingCol, rookCol, kingTo, rookTo)
	for col := lo; col <= hi; col++ {
		if col == kingCol || col == rookCol {
			continue
		}
		if board.Get(col, rank) != chess.Empty {
			return false
		}
	}
	return true
}

// castleKingSafe checks the king's path with both castling pieces lifted,
// so that a slider behind the king still counts.
func castleKingSafe(board *chess.Board, colour chess.Colour, rank chess.Rank, kingCol, rookCol, kingTo chess.Col) bool {
	tmp := board.Copy()
	tmp.Set(kingCol, rank, chess.Empty)
	tmp.Set(rookCol, rank, chess.Empty)
	lo, hi := min(kingCol, kingTo), max(kingCol, kingTo)
	for col := lo; col <= hi; col++ {
		if isSquareAttacked(tmp, col, rank, colour.Opposite()) {
			return false
		}
	}
	return true
}
