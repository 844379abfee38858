package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/jromang/picochess/internal/errors"
)

const maxLineLength = 1024 * 1024

// SplitGames splits a multi-game PGN stream into the lines of each game.
// A tag pair line that follows movetext starts a new game.
func SplitGames(r io.Reader) ([][]string, error) {
	var (
		games   [][]string
		current []string
		inMoves bool
	)
	flush := func() {
		for len(current) > 0 && strings.TrimSpace(current[len(current)-1]) == "" {
			current = current[:len(current)-1]
		}
		if len(current) > 0 {
			games = append(games, current)
		}
		current = nil
		inMoves = false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		isHeader := strings.HasPrefix(trimmed, "[") && headerRegex.MatchString(trimmed)
		switch {
		case isHeader && inMoves:
			flush()
		case trimmed == "" && len(current) == 0:
			continue
		case !isHeader && trimmed != "":
			inMoves = true
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading PGN")
	}
	flush()
	return games, nil
}
