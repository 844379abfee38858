package export

import (
	"html"
	"strconv"
	"strings"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/tree"
)

// nagGlyphs are the NAGs the move list draws as symbols.
var nagGlyphs = map[int]string{
	1:   "!",
	2:   "?",
	3:   "!!",
	4:   "??",
	5:   "!?",
	6:   "?!",
	7:   "&#9633;",
	8:   "&#9632;",
	11:  "=",
	13:  "&infin;",
	14:  "&#10866;",
	15:  "&#10865;",
	16:  "&plusmn;",
	17:  "&#8723;",
	18:  "&#43; &minus;",
	19:  "&minus; &#43;",
	36:  "&rarr;",
	142: "&#8979;",
	146: "N",
}

// HTMLExporter writes the clickable move list. Each move links to the FEN
// it produces.
type HTMLExporter struct {
	buf lineBuffer
}

// NewHTMLExporter returns an HTML exporter wrapping lines at columns.
func NewHTMLExporter(columns int) *HTMLExporter {
	return &HTMLExporter{buf: lineBuffer{columns: columns}}
}

func (h *HTMLExporter) StartGame() {}

func (h *HTMLExporter) EndGame() {
	h.buf.writeLine("")
}

func (h *HTMLExporter) StartHeaders() {}

// PutHeader is a no-op; headers are rendered by WebGameHeader.
func (h *HTMLExporter) PutHeader(tag, value string) {}

func (h *HTMLExporter) EndHeaders() {
	h.buf.writeLine("")
}

func (h *HTMLExporter) StartVariation() {
	h.buf.writeToken("<span class='gameVariation'> [ ")
}

func (h *HTMLExporter) EndVariation() {
	h.buf.writeToken(" ] </span>")
}

func (h *HTMLExporter) PutStartingComment(text string) {
	h.PutComment(text)
}

func (h *HTMLExporter) PutComment(text string) {
	h.buf.writeToken(`<span class="gameComment"><a href="#" class="comment"> ` + html.EscapeString(text) + ` </a></span>`)
}

func (h *HTMLExporter) PutNAGs(nags []int) {
	for _, nag := range sortedNAGs(nags) {
		if glyph, ok := nagGlyphs[nag]; ok {
			h.buf.writeToken(" " + glyph + " ")
		} else {
			h.buf.writeToken("$" + strconv.Itoa(nag) + " ")
		}
	}
}

func (h *HTMLExporter) PutFullmoveNumber(turn chess.Colour, n int, variationStart bool) {
	switch {
	case turn == chess.White:
		h.buf.writeToken(strconv.Itoa(n) + ". ")
	case variationStart:
		h.buf.writeToken(strconv.Itoa(n) + "... ")
	}
}

func (h *HTMLExporter) PutMove(board *engine.Position, n *tree.Node) {
	san, fen := replay(board, n)
	h.buf.writeToken(`<span class="gameMove` + strconv.Itoa(n.FullmoveNumber()) +
		`"><a href="#" class="fen" data-fen="` + fen + `" id="` + StripFEN(fen) + `"> ` +
		Figurinize(san) + ` </a></span>`)
}

func (h *HTMLExporter) PutResult(result string) {
	h.buf.writeToken(result + " ")
}

func (h *HTMLExporter) String() string {
	return h.buf.String()
}

// StripFEN turns a FEN into an element id by dropping slashes and spaces.
func StripFEN(fen string) string {
	return strings.NewReplacer("/", "", " ", "").Replace(fen)
}

// Figurinize replaces the first piece letter of a SAN with its chess
// symbol entity and an X error marker with a warning sign.
func Figurinize(san string) string {
	for _, r := range [...]struct{ letter, entity string }{
		{"N", "&#9816;"},
		{"B", "&#9815;"},
		{"R", "&#9814;"},
		{"K", "&#9812;"},
		{"Q", "&#9813;"},
		{"X", "&#9888;"},
	} {
		san = strings.Replace(san, r.letter, r.entity, 1)
	}
	return san
}
