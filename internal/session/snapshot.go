package session

import (
	"strings"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/export"
	"github.com/jromang/picochess/internal/parser"
	"github.com/jromang/picochess/internal/tree"
)

// Snapshot is the persistent form of a session.
type Snapshot struct {
	ID      string `json:"id"`
	PGN     string `json:"pgn"`
	FEN     string `json:"fen"`
	Variant string `json:"variant"`

	// Headers keep the tags exactly as set, without the setup tags the
	// PGN may need to carry.
	Headers    []Tag  `json:"headers,omitempty"`
	Result     string `json:"result,omitempty"`
	HeaderHTML string `json:"headerHtml,omitempty"`
}

// Tag is one PGN tag pair.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Snapshot captures the session.
func (s *GameSession) Snapshot() Snapshot {
	snap := Snapshot{
		ID:         s.ID,
		PGN:        s.snapshotPGN(),
		FEN:        s.fen,
		Variant:    s.tree.Variant.String(),
		Result:     s.tree.Result,
		HeaderHTML: s.headerHTML,
	}
	s.tree.Headers.Each(func(tag, value string) {
		snap.Headers = append(snap.Headers, Tag{Name: tag, Value: value})
	})
	return snap
}

// snapshotPGN writes the game with setup tags forced to match the root,
// and without the default header block FullGame falls back to.
func (s *GameSession) snapshotPGN() string {
	headers := tree.NewHeaders()
	s.tree.Headers.Each(headers.Set)
	if root := s.tree.Root().FEN; root != engine.InitialFEN {
		headers.Set(chess.SetupTag, "1")
		headers.Set(chess.FENTag, root)
	}
	if s.tree.Variant == engine.Chess960 {
		headers.Set(chess.VariantTag, s.tree.Variant.String())
	}

	e := export.NewPlainExporter(0)
	e.StartGame()
	if headers.Len() > 0 {
		export.WriteHeaders(e, headers)
	}
	export.ExportGame(s.tree, e, export.All)
	e.PutResult(export.Result(s.tree))
	e.EndGame()
	return e.String()
}

// Restore replaces the session with snap.
func (s *GameSession) Restore(snap Snapshot) *parser.Report {
	res := parser.Load(strings.Split(snap.PGN, "\n"), parser.LoadOptions{
		Logger:     s.log,
		CurrentFEN: snap.FEN,
	})
	headers := tree.NewHeaders()
	for _, tag := range snap.Headers {
		headers.Set(tag.Name, tag.Value)
	}
	res.Tree.Headers = headers
	res.Tree.Result = snap.Result

	s.ID = snap.ID
	s.tree = res.Tree
	s.cursor = res.Cursor
	s.fen = snap.FEN
	if s.fen == "" {
		s.fen = s.tree.Root().FEN
	}
	s.placed = true
	s.followCursor()
	s.headerHTML = snap.HeaderHTML
	s.render()
	return res.Report
}
