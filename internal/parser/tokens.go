// Package parser reads PGN text into game trees.
package parser

import "fmt"

// TokenType represents the type of a movetext token.
type TokenType int

const (
	// Tokens returned to the importer
	EOFToken TokenType = iota
	PercentComment
	BraceComment
	NAGToken
	VariationStart
	VariationEnd
	ResultToken
	MoveToken
	SuffixToken

	// Character classes used only while scanning
	whitespace
	commentStart
	commentEnd
	nagStart
	annotate
	checkSymbol
	dot
	percent
	star
	wordChar
	other
)

var tokenTypeNames = [...]string{
	EOFToken:       "EOF",
	PercentComment: "PERCENT_COMMENT",
	BraceComment:   "BRACE_COMMENT",
	NAGToken:       "NAG",
	VariationStart: "VARIATION_START",
	VariationEnd:   "VARIATION_END",
	ResultToken:    "RESULT",
	MoveToken:      "MOVE",
	SuffixToken:    "SUFFIX",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) && tokenTypeNames[t] != "" {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token is one movetext token.
type Token struct {
	Type TokenType

	// Text is the token as written, with braces stripped from comments.
	Text string

	// NAG holds the glyph code for NAG and suffix tokens.
	NAG int

	// Line is the 1-based source line the token starts on.
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) line %d", t.Type, t.Text, t.Line)
}

// Suffix annotation NAG codes.
const (
	NAGGoodMove        = 1
	NAGMistake         = 2
	NAGBrilliantMove   = 3
	NAGBlunder         = 4
	NAGSpeculativeMove = 5
	NAGDubiousMove     = 6
)

// suffixToNAG converts a suffix annotation to its NAG code, 0 if unknown.
func suffixToNAG(text string) int {
	switch text {
	case "!":
		return NAGGoodMove
	case "?":
		return NAGMistake
	case "!!":
		return NAGBrilliantMove
	case "??":
		return NAGBlunder
	case "!?":
		return NAGSpeculativeMove
	case "?!":
		return NAGDubiousMove
	default:
		return 0
	}
}
