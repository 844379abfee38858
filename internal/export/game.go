package export

import (
	"html"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/tree"
)

// DefaultHeaders is the header block written for a game that has none.
func DefaultHeaders() *tree.Headers {
	h := tree.NewHeaders()
	for _, kv := range [][2]string{
		{"White", "*"},
		{"Black", "*"},
		{"Event", "?"},
		{"Site", "?"},
		{"Date", "?"},
		{"Round", "?"},
		{"Result", "*"},
		{"BlackElo", "-"},
		{"WhiteElo", "-"},
	} {
		h.Set(kv[0], kv[1])
	}
	return h
}

// Result returns the game's result token, "*" when unknown.
func Result(t *tree.Tree) string {
	if chess.IsResult(t.Result) {
		return t.Result
	}
	if r := t.Headers.Get(chess.ResultTag); chess.IsResult(r) {
		return r
	}
	return "*"
}

// WriteHeaders emits the seven tag roster first, then the remaining tags
// in the order they were set.
func WriteHeaders(e Exporter, h *tree.Headers) {
	e.StartHeaders()
	for _, tag := range chess.SevenTagRoster {
		if v, ok := h.Lookup(tag); ok {
			e.PutHeader(tag, v)
		}
	}
	h.Each(func(tag, value string) {
		if !chess.IsSevenTagRosterTag(tag) {
			e.PutHeader(tag, value)
		}
	})
	e.EndHeaders()
}

// FullGame renders t as a complete PGN game: headers, movetext and result.
func FullGame(t *tree.Tree, columns int) string {
	return RenderPGN(t, columns, All)
}

// RenderPGN is FullGame with a choice of comments and variations.
func RenderPGN(t *tree.Tree, columns int, opts Options) string {
	headers := t.Headers
	if headers == nil || headers.Len() == 0 {
		headers = DefaultHeaders()
	}
	e := NewPlainExporter(columns)
	e.StartGame()
	WriteHeaders(e, headers)
	ExportGame(t, e, opts)
	e.PutResult(Result(t))
	e.EndGame()
	return e.String()
}

// MoveList renders t's movetext as HTML.
func MoveList(t *tree.Tree, columns int) string {
	return RenderMoveList(t, columns, All)
}

// RenderMoveList is MoveList with a choice of comments and variations.
func RenderMoveList(t *tree.Tree, columns int, opts Options) string {
	e := NewHTMLExporter(columns)
	ExportGame(t, e, opts)
	return e.String()
}

// WebGameHeader renders the player and event lines above the move list.
// An empty header set renders nothing.
func WebGameHeader(h *tree.Headers) string {
	if h == nil || h.Len() == 0 {
		return ""
	}
	get := func(tag, missing string) string {
		if v, ok := h.Lookup(tag); ok {
			return html.EscapeString(v)
		}
		return missing
	}
	return "<h4>" + get("White", "?") + " (" + get("WhiteElo", "-") + ") vs " +
		get("Black", "?") + " (" + get("BlackElo", "-") + ")</h4>" +
		"<h5>" + get("Event", "?") + ", " + get("Site", "?") + " " + get("Date", "?") + "</h5>"
}

// VariationTree wraps the header and move list into the move list container.
func VariationTree(headerHTML, movesHTML, result string) string {
	return headerHTML + `<div class="gameMoves">` + movesHTML +
		` <span class="gameResult">` + result + `</span></div>`
}
