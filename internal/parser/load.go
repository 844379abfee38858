package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/chess"
	"github.com/jromang/picochess/internal/engine"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/tree"
)

var headerRegex = regexp.MustCompile(`\[([A-Za-z0-9]+)\s+"(.*)"\]`)

// LoadOptions tune an import.
type LoadOptions struct {
	// Logger receives a warning per rejected move. Nil means no logging.
	Logger *zap.Logger

	// CurrentFEN is the position shown before the import. When set, the
	// cursor is resynced to it in the new tree instead of the first position.
	CurrentFEN string
}

// Result is an imported game.
type Result struct {
	Tree   *tree.Tree
	Cursor tree.Cursor
	Report *Report
}

// Load imports one PGN game given as lines. Malformed movetext never fails
// the import: rejected moves become placeholder nodes and are listed in
// the report.
func Load(lines []string, opts LoadOptions) *Result {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	headers, bodyStart := readHeaders(lines)
	report := &Report{}
	board, variant := setupPosition(headers, report, log)

	t := tree.New(board.FEN(), variant)
	t.Headers = headers

	l := &loader{
		tree:       t,
		report:     report,
		log:        log,
		boards:     []*engine.Position{board},
		variations: []tree.NodeID{tree.Root},
	}
	body := strings.Join(lines[bodyStart:], "\n") + "\n"
	z := NewTokenizer(body, bodyStart+1)
	for tok := z.Next(); tok.Type != EOFToken; tok = z.Next() {
		l.handle(tok)
	}

	if res, ok := headers.Lookup(chess.ResultTag); ok {
		t.Result = res
	}

	// An empty game still resolves to its root.
	if _, ok := t.Lookup(tree.FirstKey); !ok {
		t.Register(tree.FirstKey, tree.Root)
		t.Register(t.Root().FEN, tree.Root)
	}
	if id, ok := t.Lookup(board.FEN()); ok {
		t.Register(tree.LastKey, id)
	}

	cursor := tree.NewCursor(tree.Root)
	if opts.CurrentFEN == "" {
		id, _ := t.Lookup(tree.FirstKey)
		cursor = tree.NewCursor(id)
	} else if !cursor.GoToPosition(t, opts.CurrentFEN) {
		log.Debug("current position not in reloaded game", zap.String("fen", opts.CurrentFEN))
	}

	return &Result{Tree: t, Cursor: cursor, Report: report}
}

// readHeaders collects tag pairs up to the first line that is not one.
// It returns the index of the first body line.
func readHeaders(lines []string) (*tree.Headers, int) {
	headers := tree.NewHeaders()
	for i, line := range lines {
		m := headerRegex.FindStringSubmatch(line)
		if m == nil {
			return headers, i
		}
		headers.Set(m[1], unescapeTagValue(m[2]))
	}
	return headers, len(lines)
}

// unescapeTagValue undoes the backslash escaping of quotes and backslashes.
func unescapeTagValue(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// setupPosition picks the starting board. A FEN is only honoured together
// with a SetUp tag, and only then can the Variant tag select Chess960.
func setupPosition(headers *tree.Headers, report *Report, log *zap.Logger) (*engine.Position, engine.Variant) {
	fen, hasFEN := headers.Lookup(chess.FENTag)
	if !hasFEN || !headers.Has(chess.SetupTag) {
		return engine.StartingPosition(), engine.Standard
	}

	variant := engine.ParseVariant(headers.Get(chess.VariantTag))
	board, err := engine.NewPosition(fen, variant)
	if err != nil {
		report.SetupErr = errors.Wrapf(err, "setup position %q", fen)
		log.Warn("unusable setup position", zap.String("fen", fen), zap.Error(err))
		return engine.StartingPosition(), engine.Standard
	}
	return board, variant
}

// loader is the state of one tree walk: a board and a current node per
// open variation, plus comment bookkeeping.
type loader struct {
	tree   *tree.Tree
	report *Report
	log    *zap.Logger

	boards     []*engine.Position
	variations []tree.NodeID

	inVariation     bool
	startingComment string
}

func (l *loader) top() *tree.Node {
	return l.tree.Node(l.variations[len(l.variations)-1])
}

func (l *loader) handle(tok Token) {
	switch tok.Type {
	case ResultToken:
		l.tree.Headers.Set(chess.ResultTag, tok.Text)

	case BraceComment:
		l.comment(strings.TrimSpace(tok.Text))

	case VariationStart:
		n := l.top()
		if n.Parent == tree.NoNode {
			return
		}
		parent := l.tree.Node(n.Parent)
		board, err := engine.NewPosition(parent.FEN, l.tree.Variant)
		if err != nil {
			// Only reachable through a broken setup FEN on the root.
			board = engine.StartingPosition()
		}
		l.variations = append(l.variations, parent.ID)
		l.boards = append(l.boards, board)
		l.inVariation = false

	case VariationEnd:
		if len(l.variations) > 1 {
			l.variations = l.variations[:len(l.variations)-1]
			l.boards = l.boards[:len(l.boards)-1]
		}

	case NAGToken, SuffixToken:
		n := l.top()
		n.NAGs = append(n.NAGs, tok.NAG)

	case MoveToken:
		l.move(tok)
	}
}

func (l *loader) comment(text string) {
	n := l.top()
	if l.inVariation || n.Parent == tree.NoNode {
		if n.Comment != "" {
			n.Comment += " " + text
		} else {
			n.Comment = text
		}
		return
	}
	if l.startingComment != "" {
		text = l.startingComment + " " + text
	}
	l.startingComment = text
}

func (l *loader) move(tok Token) {
	depth := len(l.boards) - 1
	board := l.boards[depth]
	before := board.FEN()

	m, err := board.Move(tok.Text)
	l.inVariation = true
	if err != nil {
		err = &errors.ParseError{Err: err, Line: tok.Line, Token: tok.Text, FEN: before}
		l.log.Warn("unparsed move",
			zap.String("token", tok.Text),
			zap.String("fen", before),
			zap.Int("line", tok.Line),
		)
	}

	props := tree.Props{StartingComment: l.startingComment}
	l.startingComment = ""

	id := l.tree.AddNewMove(m, tok.Text, l.variations[depth], board.FEN(), props)
	l.variations[depth] = id
	l.report.add(Outcome{Token: tok.Text, Line: tok.Line, Node: id, FEN: before, Err: err})
}
