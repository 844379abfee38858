package testutil

import (
	"strings"
	"testing"

	"github.com/jromang/picochess/internal/parser"
	"github.com/jromang/picochess/internal/tree"
)

// LoadTestGames splits pgn into games and imports each of them.
// Returns nil if no games are found.
func LoadTestGames(pgn string) []*parser.Result {
	games, err := parser.SplitGames(strings.NewReader(pgn))
	if err != nil || len(games) == 0 {
		return nil
	}
	results := make([]*parser.Result, len(games))
	for i, lines := range games {
		results[i] = parser.Load(lines, parser.LoadOptions{})
	}
	return results
}

// MustLoadGame imports the first game of pgn. It calls t.Fatal when there
// is no game or when any move was rejected.
func MustLoadGame(t testing.TB, pgn string) *parser.Result {
	t.Helper()
	results := LoadTestGames(pgn)
	if len(results) == 0 {
		t.Fatalf("no game in PGN:\n%s", pgn)
	}
	res := results[0]
	if bad := res.Report.Unparsed(); len(bad) > 0 {
		t.Fatalf("unparsed moves %v in PGN:\n%s", bad, pgn)
	}
	return res
}

// MustLoadTree is MustLoadGame returning only the tree.
func MustLoadTree(t testing.TB, pgn string) *tree.Tree {
	t.Helper()
	return MustLoadGame(t, pgn).Tree
}

// MainlineSANs lists the SAN of each mainline move, placeholders as
// their raw text.
func MainlineSANs(tr *tree.Tree) []string {
	var out []string
	for _, id := range tr.Mainline() {
		n := tr.Node(id)
		if n.Move == nil {
			out = append(out, n.Raw)
			continue
		}
		out = append(out, n.SAN())
	}
	return out
}
