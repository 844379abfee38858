package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jromang/picochess/internal/eco"
	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/parser"
	"github.com/jromang/picochess/internal/worker"
)

// loadClassifier reads the ECO file, if one is given.
func loadClassifier(path string, log *zap.Logger) (*eco.Classifier, error) {
	if path == "" {
		return nil, nil
	}
	c := eco.NewClassifier(log)
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// runBatch renders every game of path to w, separated by blank lines.
// When ctx is cancelled nothing is written.
func runBatch(ctx context.Context, w io.Writer, path string, r worker.Renderer, n int, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	games, err := parser.SplitGames(file)
	if err != nil {
		return errors.Wrapf(err, "split %s", path)
	}

	results, err := worker.Render(ctx, games, r, n)
	if err != nil {
		return errors.Wrapf(err, "render %s", path)
	}

	bw := bufio.NewWriter(w)
	rejected := 0
	for i, res := range results {
		if res.Error != nil {
			return res.Error
		}
		rejected += res.Rejected
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(res.Output)
		bw.WriteString("\n")
	}
	log.Info("batch rendered",
		zap.String("file", path),
		zap.Int("games", len(games)),
		zap.Int("rejected_moves", rejected))
	return bw.Flush()
}
