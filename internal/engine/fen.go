// Package engine is the move oracle: it reads and writes FEN, generates
// legal moves (including Chess960 castling), matches forgiving move text
// against them and renders SAN.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Variant selects the castling rules used for move generation.
type Variant int

const (
	Standard Variant = iota
	Chess960
)

// String returns the Variant tag value for v.
func (v Variant) String() string {
	if v == Chess960 {
		return "Chess960"
	}
	return "Standard"
}

// ParseVariant maps a Variant tag value to a Variant. Anything that is not
// a recognisable Chess960 name is Standard.
func ParseVariant(tag string) Variant {
	tag = strings.ToLower(tag)
	if strings.Contains(tag, "960") || strings.Contains(tag, "fischerandom") {
		return Chess960
	}
	return Standard
}

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a FEN string. The piece placement and
// side to move are required; missing trailing fields take their defaults.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%q: too few fields: %w", fen, errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts[1]); err != nil {
		return nil, err
	}
	if len(parts) > 2 {
		if err := parseCastlingRights(board, parts[2]); err != nil {
			return nil, err
		}
	}
	if len(parts) > 3 {
		if err := parseEnPassant(board, parts[3]); err != nil {
			return nil, err
		}
	}
	if err := parseClocks(board, parts[min(len(parts), 4):]); err != nil {
		return nil, err
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return nil, fmt.Errorf("side not to move is in check: %w", errors.ErrInvalidFEN)
	}
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks in placement: %w", len(ranks), errors.ErrInvalidFEN)
	}

	kings := map[chess.Colour]int{}
	for i, row := range ranks {
		rank := chess.Rank('8' - i)
		col := chess.Col('a')
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				col += chess.Col(c - '0')
			default:
				piece := chess.PieceFromLetter(byte(c))
				if piece == chess.Empty {
					return fmt.Errorf("invalid piece character %q: %w", c, errors.ErrInvalidFEN)
				}
				if col > 'h' {
					return fmt.Errorf("rank %c overflows: %w", rank, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				if piece == chess.Pawn && (rank == '1' || rank == '8') {
					return fmt.Errorf("pawn on rank %c: %w", rank, errors.ErrInvalidFEN)
				}
				board.Set(col, rank, chess.MakeColouredPiece(colour, piece))
				if piece == chess.King {
					kings[colour]++
					board.SetKingSquare(colour, col, rank)
				}
				col++
			}
		}
		if col != 'h'+1 {
			return fmt.Errorf("rank %c has %d files: %w", rank, col-'a', errors.ErrInvalidFEN)
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("need exactly one king per side: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", side, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field. K and Q name
// the outermost rook on that wing (X-FEN), file letters name a rook
// directly (Shredder-FEN). Rights whose rook or king is missing are dropped.
func parseCastlingRights(board *chess.Board, field string) error {
	board.WKingCastle = 0
	board.WQueenCastle = 0
	board.BKingCastle = 0
	board.BQueenCastle = 0

	if field == "-" {
		return nil
	}

	for _, c := range field {
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		kingCol, kingRank := board.KingSquare(colour)
		if kingRank != homeRank(colour) {
			continue
		}
		rook := chess.MakeColouredPiece(colour, chess.Rook)

		var rookCol chess.Col
		switch unicode.ToUpper(c) {
		case 'K':
			rookCol = outermostRook(board, colour, kingCol+1, 'h')
		case 'Q':
			rookCol = outermostRook(board, colour, kingCol-1, 'a')
		default:
			upper := unicode.ToUpper(c)
			if upper < 'A' || upper > 'H' {
				return fmt.Errorf("invalid castling character %q: %w", c, errors.ErrInvalidFEN)
			}
			col := chess.Col(unicode.ToLower(c))
			if board.Get(col, kingRank) == rook {
				rookCol = col
			}
		}
		if rookCol == 0 {
			continue
		}
		setCastleRook(board, colour, rookCol > kingCol, rookCol)
	}
	return nil
}

// outermostRook walks from edge towards start and returns the first own rook
// on the back rank, or 0.
func outermostRook(board *chess.Board, colour chess.Colour, start, edge chess.Col) chess.Col {
	rook := chess.MakeColouredPiece(colour, chess.Rook)
	rank := homeRank(colour)
	step := 1
	if edge > start {
		step = -1
	}
	for col := edge; ; col = chess.Col(int(col) + step) {
		if !chess.IsCol(byte(col)) {
			return 0
		}
		if board.Get(col, rank) == rook {
			return col
		}
		if col == start {
			return 0
		}
	}
}

func setCastleRook(board *chess.Board, colour chess.Colour, kingside bool, col chess.Col) {
	switch {
	case colour == chess.White && kingside:
		board.WKingCastle = col
	case colour == chess.White:
		board.WQueenCastle = col
	case kingside:
		board.BKingCastle = col
	default:
		board.BQueenCastle = col
	}
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, field string) error {
	board.EnPassant = false
	if field == "-" {
		return nil
	}
	if len(field) != 2 || !chess.IsCol(field[0]) || (field[1] != '3' && field[1] != '6') {
		return fmt.Errorf("invalid en passant square %q: %w", field, errors.ErrInvalidFEN)
	}
	board.EnPassant = true
	board.EPCol = chess.Col(field[0])
	board.EPRank = chess.Rank(field[1])
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, fields []string) error {
	if len(fields) > 0 {
		n, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("halfmove clock %q: %w", fields[0], errors.ErrInvalidFEN)
		}
		board.HalfmoveClock = uint(n)
	}
	if len(fields) > 1 {
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("fullmove number %q: %w", fields[1], errors.ErrInvalidFEN)
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string. Castling rights are written
// as KQkq when they refer to the outermost rook and as file letters
// otherwise, so standard positions produce ordinary FEN.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.ToMove.FENLetter())
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	fmt.Fprintf(&sb, " %d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.Rank('8'); rank >= '1'; rank-- {
		emptyCount := 0
		for col := chess.Col('a'); col <= 'h'; col++ {
			piece := board.Get(col, rank)
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > '1' {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	start := sb.Len()
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		kingCol, _ := board.KingSquare(colour)
		for _, kingside := range []bool{true, false} {
			col := board.CastleRook(colour, kingside)
			if col == 0 {
				continue
			}
			var letter byte
			switch {
			case kingside && outermostRook(board, colour, kingCol+1, 'h') == col:
				letter = 'K'
			case !kingside && outermostRook(board, colour, kingCol-1, 'a') == col:
				letter = 'Q'
			default:
				letter = byte(unicode.ToUpper(rune(col)))
			}
			if colour == chess.Black {
				letter = byte(unicode.ToLower(rune(letter)))
			}
			sb.WriteByte(letter)
		}
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if board.EnPassant {
		sb.WriteByte(byte(board.EPCol))
		sb.WriteByte(byte(board.EPRank))
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, _ := NewBoardFromFEN(InitialFEN)
	return board
}

// homeRank is the back rank of colour.
func homeRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return '1'
	}
	return '8'
}
