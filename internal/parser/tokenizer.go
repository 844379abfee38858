package parser

import (
	"strconv"
	"strings"
)

// Character classification table
var chTab [256]TokenType

func init() {
	initLexTables()
}

func initLexTables() {
	for i := range chTab {
		chTab[i] = other
	}

	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = whitespace
	}

	chTab['{'] = commentStart
	chTab['}'] = commentEnd
	chTab['$'] = nagStart
	chTab['!'] = annotate
	chTab['?'] = annotate
	chTab['+'] = checkSymbol
	chTab['#'] = checkSymbol
	chTab['.'] = dot
	chTab['('] = VariationStart
	chTab[')'] = VariationEnd
	chTab['%'] = percent
	chTab['*'] = star

	// Anything that can appear inside a move, result or move number.
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = wordChar
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = wordChar
		chTab[c+32] = wordChar
	}
	for _, c := range []byte{'-', '=', '/', ':', '_'} {
		chTab[c] = wordChar
	}
}

// Tokenizer scans movetext. It owns its scan position, so two tokenizers
// over the same text are independent.
type Tokenizer struct {
	text      string
	pos       int
	line      int
	firstLine int
}

// NewTokenizer returns a tokenizer over text whose first line is numbered
// firstLine in the source.
func NewTokenizer(text string, firstLine int) *Tokenizer {
	if firstLine < 1 {
		firstLine = 1
	}
	return &Tokenizer{text: text, line: firstLine, firstLine: firstLine}
}

// Reset rewinds to the start of the text.
func (z *Tokenizer) Reset() {
	z.pos = 0
	z.line = z.firstLine
}

// Tokens scans the remaining text, EOF excluded.
func (z *Tokenizer) Tokens() []Token {
	var tokens []Token
	for {
		tok := z.Next()
		if tok.Type == EOFToken {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (z *Tokenizer) advance() byte {
	c := z.text[z.pos]
	z.pos++
	if c == '\n' {
		z.line++
	}
	return c
}

func (z *Tokenizer) skipWhile(class TokenType) {
	for z.pos < len(z.text) && chTab[z.text[z.pos]] == class {
		z.advance()
	}
}

// Next returns the next token, or an EOF token once the text is exhausted.
func (z *Tokenizer) Next() Token {
	for z.pos < len(z.text) {
		start := z.pos
		line := z.line
		c := z.advance()

		switch chTab[c] {
		case whitespace, checkSymbol, dot, commentEnd, other:
			continue

		case VariationStart:
			return Token{Type: VariationStart, Text: "(", Line: line}

		case VariationEnd:
			return Token{Type: VariationEnd, Text: ")", Line: line}

		case star:
			return Token{Type: ResultToken, Text: "*", Line: line}

		case percent:
			for z.pos < len(z.text) && z.text[z.pos] != '\n' && z.text[z.pos] != '\r' {
				z.advance()
			}
			return Token{Type: PercentComment, Text: z.text[start+1 : z.pos], Line: line}

		case commentStart:
			return z.gatherComment(line)

		case nagStart:
			digits := z.pos
			for z.pos < len(z.text) && z.text[z.pos] >= '0' && z.text[z.pos] <= '9' {
				z.advance()
			}
			if z.pos == digits {
				continue
			}
			n, _ := strconv.Atoi(z.text[digits:z.pos])
			return Token{Type: NAGToken, Text: z.text[start:z.pos], NAG: n, Line: line}

		case annotate:
			if z.pos < len(z.text) && chTab[z.text[z.pos]] == annotate {
				z.advance()
			}
			text := z.text[start:z.pos]
			return Token{Type: SuffixToken, Text: text, NAG: suffixToNAG(text), Line: line}

		case wordChar:
			z.skipWhile(wordChar)
			if tok, ok := classifyWord(z.text[start:z.pos], line); ok {
				return tok
			}
		}
	}
	return Token{Type: EOFToken, Line: z.line}
}

// gatherComment reads a brace comment; the opening brace is consumed.
// An unterminated comment runs to the end of the text.
func (z *Tokenizer) gatherComment(line int) Token {
	var sb strings.Builder
	for z.pos < len(z.text) {
		c := z.advance()
		if c == '}' {
			break
		}
		if c == '\n' || c == '\r' {
			c = ' '
		}
		sb.WriteByte(c)
	}
	return Token{Type: BraceComment, Text: sb.String(), Line: line}
}

// classifyWord sorts a run of word characters into results, moves and
// move numbers. Move numbers and digit-free words are dropped.
func classifyWord(word string, line int) (Token, bool) {
	switch word {
	case "1-0", "0-1", "1/2-1/2":
		return Token{Type: ResultToken, Text: word, Line: line}, true
	case "--", "O-O", "O-O-O", "0-0", "0-0-0", "o-o", "o-o-o":
		return Token{Type: MoveToken, Text: word, Line: line}, true
	}
	if isMoveNumber(word) {
		return Token{}, false
	}
	if strings.ContainsAny(word, "0123456789") {
		return Token{Type: MoveToken, Text: word, Line: line}, true
	}
	return Token{}, false
}

func isMoveNumber(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return true
}
