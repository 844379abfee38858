// Package errors provides sentinel errors and error types for picoweb.
// Errors are inspected with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that no legal move in the position matches.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousMove indicates move text that matches several legal moves.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrParseFailure indicates a general PGN parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownPosition indicates a FEN that is not in the position index.
	ErrUnknownPosition = errors.New("unknown position")

	// ErrSessionNotFound indicates a missing or expired session snapshot.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownEvent indicates a websocket event with no handler.
	ErrUnknownEvent = errors.New("unknown event")
)

// ParseError carries the context of a move token that could not be resolved.
type ParseError struct {
	Err   error  // The underlying error
	Line  int    // Line number in the PGN source (1-based, 0 if unknown)
	Token string // The offending token
	FEN   string // Position the token was tried against
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Token))
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("fen %q", e.FEN))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
