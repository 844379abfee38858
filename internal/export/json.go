package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/tree"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Comment    string            `json:"comment,omitempty"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	Variant    string            `json:"variant,omitempty"`
	InitialFEN string            `json:"initialFEN,omitempty"`
	FinalFEN   string            `json:"finalFEN"`
}

// JSONMove represents a move in JSON format. Variations hold the
// alternatives to this move, each as its own line.
type JSONMove struct {
	MoveNumber      int          `json:"moveNumber,omitempty"`
	Color           string       `json:"color"`
	SAN             string       `json:"san"`
	UCI             string       `json:"uci,omitempty"`
	From            string       `json:"from,omitempty"`
	To              string       `json:"to,omitempty"`
	Piece           string       `json:"piece,omitempty"`
	Captured        string       `json:"captured,omitempty"`
	Promotion       string       `json:"promotion,omitempty"`
	NAGs            []int        `json:"nags,omitempty"`
	StartingComment string       `json:"startingComment,omitempty"`
	Comment         string       `json:"comment,omitempty"`
	FEN             string       `json:"fen"`
	Variations      [][]JSONMove `json:"variations,omitempty"`
}

// WriteJSON encodes t as indented JSON.
func WriteJSON(w io.Writer, t *tree.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(t))
}

// GameToJSON converts a game tree to JSON format.
func GameToJSON(t *tree.Tree) *JSONGame {
	jg := &JSONGame{
		Tags:    t.Headers.Map(),
		Comment: t.Root().Comment,
		Result:  Result(t),
	}
	if jg.Tags == nil {
		jg.Tags = map[string]string{}
	}
	if t.Variant == engine.Chess960 {
		jg.Variant = t.Variant.String()
	}
	if t.Root().FEN != engine.InitialFEN {
		jg.InitialFEN = t.Root().FEN
	}

	jg.FinalFEN = t.Root().FEN
	if root := t.Root(); len(root.Children) > 0 {
		jg.Moves = convertLine(t, t.Node(root.Children[0]))
		mainline := t.Mainline()
		jg.PlyCount = len(mainline)
		jg.FinalFEN = t.Node(mainline[len(mainline)-1]).FEN
	}
	return jg
}

// convertLine follows the mainline from n, attaching each move's
// alternatives as variations.
func convertLine(t *tree.Tree, n *tree.Node) []JSONMove {
	var line []JSONMove
	for {
		jm := convertSingleMove(t, n)
		if parent := t.Node(n.Parent); parent != nil && parent.Children[0] == n.ID {
			for _, sib := range parent.Children[1:] {
				jm.Variations = append(jm.Variations, convertLine(t, t.Node(sib)))
			}
		}
		line = append(line, jm)
		if len(n.Children) == 0 {
			return line
		}
		n = t.Node(n.Children[0])
	}
}

func convertSingleMove(t *tree.Tree, n *tree.Node) JSONMove {
	colour := chess.White
	if parent := t.Node(n.Parent); parent != nil {
		colour = fenTurn(parent.FEN)
	}
	jm := JSONMove{
		Color:           colorName(colour),
		SAN:             n.SAN(),
		NAGs:            sortedNAGs(n.NAGs),
		StartingComment: n.StartingComment,
		Comment:         n.Comment,
		FEN:             n.FEN,
	}
	if len(jm.NAGs) == 0 {
		jm.NAGs = nil
	}
	if colour == chess.White {
		jm.MoveNumber = n.FullmoveNumber()
	}

	m := n.Move
	if m == nil {
		jm.SAN = unresolvedSAN(n)
		return jm
	}
	if m.IsNull() {
		return jm
	}
	jm.UCI = engine.UCIMove(m, t.Variant)
	jm.From = m.From()
	jm.To = m.To()
	jm.Piece = pieceTypeName(m.PieceToMove)
	if m.IsCapture() {
		jm.Captured = pieceTypeName(m.CapturedPiece)
		if m.Class == chess.EnPassantPawnMove {
			jm.Captured = "pawn"
		}
	}
	if m.IsPromotion() {
		jm.Promotion = pieceTypeName(m.PromotedPiece)
	}
	return jm
}

// fenTurn reads the side to move from a FEN.
func fenTurn(fen string) chess.Colour {
	fields := strings.Fields(fen)
	if len(fields) > 1 && fields[1] == "b" {
		return chess.Black
	}
	return chess.White
}

func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
