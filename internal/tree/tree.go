// Package tree holds a game as a tree of moves. Nodes live in one arena
// owned by the Tree and refer to each other by NodeID. Children[0] of any
// node is the mainline continuation, later children are variations in the
// order they were added.
package tree

import (
	"fmt"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
)

// NodeID identifies a node within its Tree.
type NodeID int

const (
	// Root is the id of the node holding the starting position.
	Root NodeID = 0
	// NoNode marks an absent node: the root's parent, or an unset cursor.
	NoNode NodeID = -1
)

// Reserved position index keys.
const (
	FirstKey = "first"
	LastKey  = "last"
)

// Node is one ply of the game and its annotations.
type Node struct {
	ID NodeID

	// Move is nil on the root and on placeholders for rejected move text.
	Move *chess.Move

	// Raw is the move text as read from PGN.
	Raw string

	// FEN is the position after the move.
	FEN string

	Parent   NodeID
	Children []NodeID

	// NAGs in the order they were read.
	NAGs []int

	Comment         string
	StartingComment string

	// HalfMoveNum counts plies from the start of the game, 1 for the first move.
	HalfMoveNum int
}

// IsPlaceholder reports whether n stands for move text the oracle rejected.
func (n *Node) IsPlaceholder() bool {
	return n.Parent != NoNode && n.Move == nil
}

// SAN returns the move's SAN, or "" for the root and placeholders.
func (n *Node) SAN() string {
	if n.Move == nil {
		return ""
	}
	return n.Move.SAN
}

// FullmoveNumber is the PGN move number this ply is printed under.
func (n *Node) FullmoveNumber() int {
	return (n.HalfMoveNum + 1) / 2
}

// Props are the annotations attached to a move when it is added.
type Props struct {
	Comment         string
	StartingComment string
}

// Tree is a game: the move arena, the position index, headers and result.
type Tree struct {
	nodes []*Node
	index map[string]NodeID

	// SetupFEN is the starting position of the game.
	SetupFEN string
	// Variant selects the castling rules moves were resolved with.
	Variant engine.Variant

	Headers *Headers
	Result  string
}

// New creates a tree holding only a root at setupFEN, with an empty index.
func New(setupFEN string, variant engine.Variant) *Tree {
	t := &Tree{
		index:    make(map[string]NodeID),
		SetupFEN: setupFEN,
		Variant:  variant,
		Headers:  NewHeaders(),
	}
	t.nodes = append(t.nodes, &Node{ID: Root, FEN: setupFEN, Parent: NoNode})
	return t
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for id, or nil if id is not in the tree.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.nodes[Root]
}

// AddNewMove appends a child to parent and registers its FEN. The first
// move added to a tree with an empty index also registers the parent
// under "first" (and its FEN) after resetting it to the setup position.
func (t *Tree) AddNewMove(move *chess.Move, raw string, parent NodeID, fen string, props Props) NodeID {
	p := t.Node(parent)
	if p == nil {
		p = t.Root()
	}

	half := 1
	if p.Parent != NoNode {
		half = p.HalfMoveNum + 1
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		ID:              id,
		Move:            move,
		Raw:             raw,
		FEN:             fen,
		Parent:          p.ID,
		Comment:         props.Comment,
		StartingComment: props.StartingComment,
		HalfMoveNum:     half,
	})
	p.Children = append(p.Children, id)

	if len(t.index) == 0 {
		p.FEN = t.SetupFEN
		t.index[FirstKey] = p.ID
		t.index[p.FEN] = p.ID
	}
	t.index[fen] = id
	return id
}

// Lookup resolves a FEN or a reserved key through the position index.
func (t *Tree) Lookup(key string) (NodeID, bool) {
	id, ok := t.index[key]
	return id, ok
}

// Register points key at id in the position index.
func (t *Tree) Register(key string, id NodeID) {
	t.index[key] = id
}

// IndexLen returns the number of index entries, reserved keys included.
func (t *Tree) IndexLen() int {
	return len(t.index)
}

// FindChild returns the child of parent whose move has the given SAN.
func (t *Tree) FindChild(parent NodeID, san string) (NodeID, bool) {
	p := t.Node(parent)
	if p == nil {
		return NoNode, false
	}
	for _, c := range p.Children {
		if n := t.nodes[c]; n.Move != nil && n.Move.SAN == san {
			return c, true
		}
	}
	return NoNode, false
}

// Mainline returns the ids along Children[0] from the root, root excluded.
func (t *Tree) Mainline() []NodeID {
	var line []NodeID
	for n := t.Root(); len(n.Children) > 0; n = t.nodes[n.Children[0]] {
		line = append(line, n.Children[0])
	}
	return line
}

// Path returns the ids from the first move down to id, root excluded.
func (t *Tree) Path(id NodeID) []NodeID {
	var path []NodeID
	for n := t.Node(id); n != nil && n.Parent != NoNode; n = t.nodes[n.Parent] {
		path = append(path, n.ID)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Walk visits every node depth first, parents before children.
func (t *Tree) Walk(fn func(n *Node)) {
	var visit func(id NodeID)
	visit = func(id NodeID) {
		n := t.nodes[id]
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(Root)
}

// Validate checks the structural invariants: every non-root node is listed
// exactly once by its parent, and ply numbers grow by one per generation.
func (t *Tree) Validate() error {
	for _, n := range t.nodes[1:] {
		p := t.Node(n.Parent)
		if p == nil {
			return fmt.Errorf("node %d: parent %d not in tree", n.ID, n.Parent)
		}
		count := 0
		for _, c := range p.Children {
			if c == n.ID {
				count++
			}
		}
		if count != 1 {
			return fmt.Errorf("node %d listed %d times by parent %d", n.ID, count, p.ID)
		}
		want := 1
		if p.Parent != NoNode {
			want = p.HalfMoveNum + 1
		}
		if n.HalfMoveNum != want {
			return fmt.Errorf("node %d: half move %d, want %d", n.ID, n.HalfMoveNum, want)
		}
	}
	return nil
}
