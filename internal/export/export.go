// Package export renders game trees as PGN text or as the HTML move list
// shown by the web client.
package export

import (
	"sort"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/tree"
)

// Exporter receives a game as a stream of emission calls.
type Exporter interface {
	StartGame()
	EndGame()

	StartHeaders()
	PutHeader(tag, value string)
	EndHeaders()

	StartVariation()
	EndVariation()

	PutStartingComment(text string)
	PutComment(text string)
	PutNAGs(nags []int)

	// PutFullmoveNumber writes the move number before a move. Black's moves
	// are only numbered at the start of a variation.
	PutFullmoveNumber(turn chess.Colour, n int, variationStart bool)

	// PutMove writes n's move as played on board. The board is not modified.
	PutMove(board *engine.Position, n *tree.Node)

	PutResult(result string)

	String() string
}

// Options select what ExportGame writes besides the mainline moves.
type Options struct {
	Comments   bool
	Variations bool
}

// All writes comments, NAGs and variations.
var All = Options{Comments: true, Variations: true}

// ExportGame walks t from its root and feeds the movetext to e. Sidelines
// are written before the mainline continues.
func ExportGame(t *tree.Tree, e Exporter, opts Options) {
	root := t.Root()
	board, err := engine.NewPosition(root.FEN, t.Variant)
	if err != nil {
		board = engine.StartingPosition()
	}
	if opts.Comments && root.Comment != "" {
		e.PutStartingComment(root.Comment)
	}
	w := &walker{tree: t, e: e, opts: opts}
	w.walk(root, board, false)
}

type walker struct {
	tree *tree.Tree
	e    Exporter
	opts Options
}

func (w *walker) walk(n *tree.Node, board *engine.Position, afterVariation bool) {
	if len(n.Children) == 0 {
		return
	}
	main := w.tree.Node(n.Children[0])
	number := main.FullmoveNumber()

	w.e.PutFullmoveNumber(board.Turn(), number, afterVariation)
	w.e.PutMove(board, main)
	if w.opts.Comments {
		w.annotate(main)
	}

	if w.opts.Variations {
		for _, id := range n.Children[1:] {
			v := w.tree.Node(id)
			w.e.StartVariation()
			if w.opts.Comments && v.StartingComment != "" {
				w.e.PutStartingComment(v.StartingComment)
			}
			w.e.PutFullmoveNumber(board.Turn(), number, true)
			w.e.PutMove(board, v)
			if w.opts.Comments {
				w.annotate(v)
			}
			played := advance(board, v)
			w.walk(v, board, false)
			if played {
				board.Undo()
			}
			w.e.EndVariation()
		}
	}

	played := advance(board, main)
	w.walk(main, board, w.opts.Variations && len(n.Children) > 1)
	if played {
		board.Undo()
	}
}

func (w *walker) annotate(n *tree.Node) {
	if len(n.NAGs) > 0 {
		w.e.PutNAGs(n.NAGs)
	}
	if n.Comment != "" {
		w.e.PutComment(n.Comment)
	}
}

// advance plays n's move on board. Placeholders leave the board alone.
func advance(board *engine.Position, n *tree.Node) bool {
	if n.Move == nil {
		return false
	}
	_, err := board.Replay(n.Move)
	return err == nil
}

// replay plays n's move on a clone of board and returns the move's SAN and
// the resulting FEN. A move that cannot be replayed gets a marker SAN
// starting with X and the unchanged FEN.
func replay(board *engine.Position, n *tree.Node) (san, fen string) {
	clone := board.Clone()
	if n.Move != nil {
		if m, err := clone.Replay(n.Move); err == nil {
			return m.SAN, clone.FEN()
		}
	}
	return unresolvedSAN(n), clone.FEN()
}

func unresolvedSAN(n *tree.Node) string {
	if n.Move != nil && n.Move.From() != "" {
		return "X" + n.Move.From() + n.Move.To()
	}
	return "X" + n.Raw
}

// sortedNAGs returns a numerically sorted copy.
func sortedNAGs(nags []int) []int {
	out := append([]int(nil), nags...)
	sort.Ints(out)
	return out
}
