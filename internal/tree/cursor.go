package tree

// Cursor points at the current node of a tree. The zero value is not
// useful; start from NewCursor or UnsetCursor.
type Cursor struct {
	id NodeID
}

// NewCursor returns a cursor on id.
func NewCursor(id NodeID) Cursor {
	return Cursor{id: id}
}

// UnsetCursor returns a cursor that points nowhere.
func UnsetCursor() Cursor {
	return Cursor{id: NoNode}
}

// ID returns the current node id, NoNode when unset.
func (c Cursor) ID() NodeID {
	return c.id
}

// IsSet reports whether the cursor points at a node.
func (c Cursor) IsSet() bool {
	return c.id != NoNode
}

// Node resolves the cursor against t.
func (c Cursor) Node(t *Tree) *Node {
	return t.Node(c.id)
}

// GoToStart moves to the root.
func (c *Cursor) GoToStart() {
	c.id = Root
}

// GoToEnd moves to the "last" index entry, if registered.
func (c *Cursor) GoToEnd(t *Tree) {
	if id, ok := t.Lookup(LastKey); ok {
		c.id = id
	}
}

// GoForward follows the mainline child.
func (c *Cursor) GoForward(t *Tree) bool {
	n := t.Node(c.id)
	if n == nil || len(n.Children) == 0 {
		return false
	}
	c.id = n.Children[0]
	return true
}

// GoBack moves to the parent.
func (c *Cursor) GoBack(t *Tree) bool {
	n := t.Node(c.id)
	if n == nil || n.Parent == NoNode {
		return false
	}
	c.id = n.Parent
	return true
}

// GoToPosition jumps to the node indexed under fen. On a miss the cursor
// is left unset.
func (c *Cursor) GoToPosition(t *Tree, fen string) bool {
	id, ok := t.Lookup(fen)
	if !ok {
		c.id = NoNode
		return false
	}
	c.id = id
	return true
}
