package worker

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/eco"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/export"
	"github.com/jromang/picochess/internal/parser"
)

// Format is a batch output format.
type Format string

const (
	FormatPGN  Format = "pgn"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat accepts pgn, html or json in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPGN, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q", errors.ErrInvalidConfig, s)
}

// Renderer imports a game and renders it in Format.
type Renderer struct {
	Format  Format
	Columns int
	Options export.Options
	Logger  *zap.Logger

	// Classifier, when set, adds ECO tags before rendering.
	Classifier *eco.Classifier
}

// Process is a ProcessFunc.
func (r Renderer) Process(item WorkItem) ProcessResult {
	res := parser.Load(item.Lines, parser.LoadOptions{Logger: r.Logger})
	out := ProcessResult{Index: item.Index, Rejected: len(res.Report.Unparsed())}
	t := res.Tree
	if r.Classifier != nil {
		r.Classifier.AddTags(t)
	}

	switch r.Format {
	case FormatHTML:
		moves := export.RenderMoveList(t, r.Columns, r.Options)
		out.Output = export.VariationTree(export.WebGameHeader(t.Headers), moves, export.Result(t))
	case FormatJSON:
		var buf bytes.Buffer
		if err := export.WriteJSON(&buf, t); err != nil {
			out.Error = errors.Wrapf(err, "game %d", item.Index+1)
			return out
		}
		out.Output = strings.TrimRight(buf.String(), "\n")
	default:
		out.Output = export.RenderPGN(t, r.Columns, r.Options)
	}
	return out
}

// Render renders games on workers goroutines and returns the results in
// input order. Cancelling ctx stops the pool; the games rendered so far are
// returned with ctx's error.
func Render(ctx context.Context, games [][]string, r Renderer, workers int) ([]ProcessResult, error) {
	pool := NewPool(r.Process, WithWorkers(workers), WithBufferSize(2*workers))
	pool.Start()
	stop := context.AfterFunc(ctx, pool.Stop)
	defer stop()

	go func() {
		for i, lines := range games {
			if !pool.SubmitContext(ctx, WorkItem{Lines: lines, Index: i}) {
				break
			}
		}
		pool.Close()
	}()
	results := pool.Collect(len(games))
	return results, ctx.Err()
}
