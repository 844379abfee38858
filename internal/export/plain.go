package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/tree"
)

// PlainExporter writes standard PGN.
type PlainExporter struct {
	buf lineBuffer
}

// NewPlainExporter returns a PGN exporter wrapping lines at columns.
func NewPlainExporter(columns int) *PlainExporter {
	return &PlainExporter{buf: lineBuffer{columns: columns}}
}

func (p *PlainExporter) StartGame() {}

func (p *PlainExporter) EndGame() {
	p.buf.writeLine("")
}

func (p *PlainExporter) StartHeaders() {}

func (p *PlainExporter) PutHeader(tag, value string) {
	p.buf.writeLine(fmt.Sprintf("[%s \"%s\"]", tag, escapeTagValue(value)))
}

func (p *PlainExporter) EndHeaders() {
	p.buf.writeLine("")
}

func (p *PlainExporter) StartVariation() {
	p.buf.writeToken("( ")
}

func (p *PlainExporter) EndVariation() {
	p.buf.writeToken(") ")
}

func (p *PlainExporter) PutStartingComment(text string) {
	p.PutComment(text)
}

func (p *PlainExporter) PutComment(text string) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "}", ""))
	p.buf.writeToken("{ " + text + " } ")
}

func (p *PlainExporter) PutNAGs(nags []int) {
	for _, nag := range sortedNAGs(nags) {
		p.buf.writeToken("$" + strconv.Itoa(nag) + " ")
	}
}

func (p *PlainExporter) PutFullmoveNumber(turn chess.Colour, n int, variationStart bool) {
	switch {
	case turn == chess.White:
		p.buf.writeToken(strconv.Itoa(n) + ". ")
	case variationStart:
		p.buf.writeToken(strconv.Itoa(n) + "... ")
	}
}

func (p *PlainExporter) PutMove(board *engine.Position, n *tree.Node) {
	san, _ := replay(board, n)
	p.buf.writeToken(san + " ")
}

func (p *PlainExporter) PutResult(result string) {
	p.buf.writeToken(result + " ")
}

func (p *PlainExporter) String() string {
	return p.buf.String()
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
