package engine

import (
	"errors"
	"testing"

	"github.com/jromang/picochess/internal/chess"
	pgnerrors "github.com/jromang/picochess/internal/errors"
)

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*chess.Board) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(b *chess.Board) bool {
				return b.Get('e', '1') == chess.W(chess.King) &&
					b.Get('e', '8') == chess.B(chess.King) &&
					b.Get('e', '2') == chess.W(chess.Pawn) &&
					b.Get('e', '7') == chess.B(chess.Pawn) &&
					b.ToMove == chess.White &&
					b.WKingCastle == 'h' &&
					b.WQueenCastle == 'a'
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.Get('e', '4') == chess.W(chess.Pawn) &&
					b.Get('e', '2') == chess.Empty &&
					b.ToMove == chess.Black &&
					b.EnPassant &&
					b.EPCol == 'e' &&
					b.EPRank == '3'
			},
		},
		{
			name: "chess960 outermost rooks",
			fen:  "bqnbrkrn/pppppppp/8/8/8/8/PPPPPPPP/BQNBRKRN w KQkq - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.WKingCastle == 'g' && b.WQueenCastle == 'e' &&
					b.BKingCastle == 'g' && b.BQueenCastle == 'e' &&
					b.WKingCol == 'f'
			},
		},
		{
			name: "shredder castling letters",
			fen:  "bqnbrkrn/pppppppp/8/8/8/8/PPPPPPPP/BQNBRKRN w GEge - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.WKingCastle == 'g' && b.WQueenCastle == 'e' &&
					b.BKingCastle == 'g' && b.BQueenCastle == 'e'
			},
		},
		{
			name: "missing clocks default",
			fen:  "4k3/8/8/8/8/8/8/4K3 b - -",
			checkFn: func(b *chess.Board) bool {
				return b.HalfmoveClock == 0 && b.MoveNumber == 1 && b.ToMove == chess.Black
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			if !tt.checkFn(board) {
				t.Error("board state check failed")
			}
		})
	}
}

func TestNewBoardFromFEN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"placement only", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"digit nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"pawn on back rank", "4k2P/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad en passant", "4k3/8/8/8/8/8/8/4K3 w - e4 0 1"},
		{"bad clock", "4k3/8/8/8/8/8/8/4K3 w - - x 1"},
		{"opponent in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoardFromFEN(tt.fen)
			if !errors.Is(err, pgnerrors.ErrInvalidFEN) {
				t.Errorf("NewBoardFromFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 4 20",
		"bqnbrkrn/pppppppp/8/8/8/8/PPPPPPPP/BQNBRKRN w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board, err := NewBoardFromFEN(fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			if got := BoardToFEN(board); got != fen {
				t.Errorf("BoardToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestBoardToFEN_Normalises(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "shredder letters become X-FEN",
			in:   "bqnbrkrn/pppppppp/8/8/8/8/PPPPPPPP/BQNBRKRN w GEge - 0 1",
			want: "bqnbrkrn/pppppppp/8/8/8/8/PPPPPPPP/BQNBRKRN w KQkq - 0 1",
		},
		{
			name: "rights without rooks are dropped",
			in:   "4k3/8/8/8/8/8/8/4K3 w KQkq - 0 1",
			want: "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		},
		{
			name: "inner rook keeps its file letter",
			in:   "4k3/8/8/8/8/8/8/1R2K1RR w G - 0 1",
			want: "4k3/8/8/8/8/8/8/1R2K1RR w G - 0 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.in)
			if err != nil {
				t.Fatalf("NewBoardFromFEN() error = %v", err)
			}
			if got := BoardToFEN(board); got != tt.want {
				t.Errorf("BoardToFEN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		tag  string
		want Variant
	}{
		{"Chess960", Chess960},
		{"chess 960", Chess960},
		{"Fischerandom", Chess960},
		{"Standard", Standard},
		{"", Standard},
		{"Crazyhouse", Standard},
	}
	for _, tt := range tests {
		if got := ParseVariant(tt.tag); got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}
