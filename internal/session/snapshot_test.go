package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
)

func TestSnapshotRestore(t *testing.T) {
	s := New("game-1", Options{Columns: 40})
	s.LoadPGN(strings.Split("[Event \"Club\"]\n[White \"A\"]\n\n{Opening} 1. e4 {best} e5 (1... c5 $2) 2. Nf3 Nc6 1-0", "\n"))
	s.GoToEnd()
	s.GoBack()

	snap := s.Snapshot()
	assert.Equal(t, "game-1", snap.ID)
	assert.Equal(t, "Standard", snap.Variant)
	assert.Equal(t, s.FEN(), snap.FEN)
	assert.Equal(t, []Tag{{"Event", "Club"}, {"White", "A"}, {"Result", "1-0"}}, snap.Headers)

	restored := New("other", Options{Columns: 40})
	report := restored.Restore(snap)
	require.True(t, report.Clean(), "unparsed: %v", report.Unparsed())

	assert.Equal(t, "game-1", restored.ID)
	assert.Equal(t, s.FEN(), restored.FEN())
	assert.Equal(t, "Nf3", restored.Current().SAN())
	assert.Equal(t, s.FullGame(), restored.FullGame())
	assert.Equal(t, s.MoveListHTML(), restored.MoveListHTML())
	assert.Equal(t, s.Headers(), restored.Headers())
}

func TestSnapshotWithoutHeaders(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"
	s := New("setup", Options{})
	require.NoError(t, s.NewBoard(fen))
	_, err := s.UpdateCurrentPosition("e1", "c1", chess.Off)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Headers)
	assert.Contains(t, snap.PGN, `[FEN "`+fen+`"]`)

	restored := New("x", Options{})
	restored.Restore(snap)
	assert.Equal(t, fen, restored.Tree().Root().FEN)
	assert.Equal(t, "O-O-O", restored.Current().SAN())
	assert.Empty(t, restored.Headers(), "setup tags stay out of the headers")
	assert.Equal(t, s.MoveListHTML(), restored.MoveListHTML())
	assert.Equal(t, s.FullGame(), restored.FullGame())
}

func TestSnapshotChess960(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/1R3KR1 w KQ - 0 1"
	s := New("960", Options{})
	report := s.LoadPGN([]string{`[Variant "Chess960"]`, `[SetUp "1"]`, `[FEN "` + fen + `"]`, "", "1. O-O *"})
	require.True(t, report.Clean())
	s.GoToEnd()

	snap := s.Snapshot()
	assert.Equal(t, "Chess960", snap.Variant)

	restored := New("960", Options{})
	require.True(t, restored.Restore(snap).Clean())
	assert.Equal(t, engine.Chess960, restored.Tree().Variant)
	assert.Equal(t, "O-O", restored.Current().SAN())
	assert.Equal(t, "f1g1", restored.PreviousMoves(FormatUCI))
}

func TestRestoreUnknownPosition(t *testing.T) {
	s := New("a", Options{})
	s.LoadPGN([]string{"1. d4 *"})
	snap := s.Snapshot()
	snap.FEN = "8/8/8/8/8/8/8/K6k w - - 0 1"

	restored := New("b", Options{})
	restored.Restore(snap)
	assert.False(t, restored.Cursor().IsSet())
	assert.Equal(t, snap.FEN, restored.FEN())
}
