package export

import "strings"

// lineBuffer collects tokens into lines no wider than columns. Zero
// columns disables wrapping.
type lineBuffer struct {
	columns int
	lines   []string
	current string
}

func (b *lineBuffer) writeToken(token string) {
	if b.columns > 0 && b.columns-len(b.current) < len(token) {
		b.flush()
	}
	b.current += token
}

func (b *lineBuffer) writeLine(line string) {
	b.flush()
	b.lines = append(b.lines, trimRight(line))
}

func (b *lineBuffer) flush() {
	if b.current != "" {
		b.lines = append(b.lines, trimRight(b.current))
		b.current = ""
	}
}

// String returns the lines joined by newlines without trailing whitespace.
// The buffer can still be written to afterwards.
func (b *lineBuffer) String() string {
	lines := b.lines
	if b.current != "" {
		lines = append(lines[:len(lines):len(lines)], trimRight(b.current))
	}
	return trimRight(strings.Join(lines, "\n"))
}

func trimRight(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
