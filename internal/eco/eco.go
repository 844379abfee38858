// Package eco classifies games by opening from an ECO file in PGN form.
package eco

import (
	"hash/fnv"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/parser"
	"github.com/jromang/picochess/internal/tree"
)

// HalfMoveLimit is how far a game may be from an ECO line's length and
// still match its final position.
const HalfMoveLimit = 6

// Tags written by AddTags, in order.
var Tags = []string{"ECO", "Opening", "Variation", "SubVariation"}

// Entry is one classified opening line.
type Entry struct {
	Code         string // e.g. "B33"
	Opening      string
	Variation    string
	SubVariation string

	position  string // key of the final position
	pathHash  uint64 // hash of every position on the way
	halfMoves int
}

// Classifier looks up games against the loaded lines.
type Classifier struct {
	byPosition   map[string][]*Entry
	maxHalfMoves int
	loaded       int
	log          *zap.Logger
}

// NewClassifier returns an empty classifier.
func NewClassifier(log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{
		byPosition:   make(map[string][]*Entry),
		maxHalfMoves: HalfMoveLimit,
		log:          log,
	}
}

// LoadFile loads an ECO file.
func (c *Classifier) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "cannot open ECO file")
	}
	defer f.Close()
	return c.Load(f)
}

// Load reads ECO lines, one game per line with an ECO tag. Lines without
// the tag or without moves are ignored.
func (c *Classifier) Load(r io.Reader) error {
	games, err := parser.SplitGames(r)
	if err != nil {
		return errors.Wrap(err, "reading ECO file")
	}
	for _, lines := range games {
		c.add(parser.Load(lines, parser.LoadOptions{}).Tree)
	}
	c.log.Debug("ECO lines loaded", zap.Int("entries", c.loaded))
	return nil
}

func (c *Classifier) add(t *tree.Tree) {
	code := t.Headers.Get("ECO")
	if code == "" || !standardStart(t) {
		return
	}

	var (
		hash      uint64
		halfMoves int
		last      string
	)
	for _, id := range t.Mainline() {
		n := t.Node(id)
		if n.Move == nil {
			break
		}
		last = positionKey(n.FEN)
		hash ^= keyHash(last)
		halfMoves++
	}
	if halfMoves == 0 {
		return
	}

	for _, e := range c.byPosition[last] {
		if e.halfMoves == halfMoves && e.pathHash == hash {
			return
		}
	}
	c.byPosition[last] = append(c.byPosition[last], &Entry{
		Code:         code,
		Opening:      t.Headers.Get("Opening"),
		Variation:    t.Headers.Get("Variation"),
		SubVariation: t.Headers.Get("SubVariation"),
		position:     last,
		pathHash:     hash,
		halfMoves:    halfMoves,
	})
	c.loaded++
	if halfMoves+HalfMoveLimit > c.maxHalfMoves {
		c.maxHalfMoves = halfMoves + HalfMoveLimit
	}
}

// Classify returns the deepest line the mainline of t reaches, or nil.
func (c *Classifier) Classify(t *tree.Tree) *Entry {
	if c.loaded == 0 || !standardStart(t) {
		return nil
	}

	var (
		best      *Entry
		hash      uint64
		halfMoves int
	)
	for _, id := range t.Mainline() {
		n := t.Node(id)
		if n.Move == nil {
			break
		}
		halfMoves++
		if halfMoves > c.maxHalfMoves {
			break
		}
		key := positionKey(n.FEN)
		hash ^= keyHash(key)
		if m := c.match(key, hash, halfMoves); m != nil {
			best = m
		}
	}
	return best
}

// match prefers the line with the same move order, then any line ending
// in the same position at a similar depth.
func (c *Classifier) match(key string, hash uint64, halfMoves int) *Entry {
	var possible *Entry
	for _, e := range c.byPosition[key] {
		if e.halfMoves == halfMoves && e.pathHash == hash {
			return e
		}
		if abs(halfMoves-e.halfMoves) <= HalfMoveLimit {
			possible = e
		}
	}
	return possible
}

// AddTags sets the ECO tags of the line t matches. It reports whether
// anything matched.
func (c *Classifier) AddTags(t *tree.Tree) bool {
	e := c.Classify(t)
	if e == nil {
		return false
	}
	for i, v := range []string{e.Code, e.Opening, e.Variation, e.SubVariation} {
		if v != "" {
			t.Headers.Set(Tags[i], v)
		}
	}
	return true
}

// Len returns the number of lines loaded.
func (c *Classifier) Len() int {
	return c.loaded
}

func standardStart(t *tree.Tree) bool {
	return positionKey(t.Root().FEN) == positionKey(engine.InitialFEN)
}

// positionKey drops the move counters from a FEN.
func positionKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func keyHash(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key)) //nolint:errcheck
	return h.Sum64()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
