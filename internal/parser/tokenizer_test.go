package parser

import "testing"

func TestTokenizerClasses(t *testing.T) {
	text := "% engine line\n1. e4 {a\ncomment} e5!? 2. Nf3 $14 (2. O-O-O 0-0 --) Nc6?? 1/2-1/2 * 1-0 0-1\n"
	want := []struct {
		typ  TokenType
		text string
		nag  int
		line int
	}{
		{PercentComment, " engine line", 0, 1},
		{MoveToken, "e4", 0, 2},
		{BraceComment, "a comment", 0, 2},
		{MoveToken, "e5", 0, 3},
		{SuffixToken, "!?", NAGSpeculativeMove, 3},
		{MoveToken, "Nf3", 0, 3},
		{NAGToken, "$14", 14, 3},
		{VariationStart, "(", 0, 3},
		{MoveToken, "O-O-O", 0, 3},
		{MoveToken, "0-0", 0, 3},
		{MoveToken, "--", 0, 3},
		{VariationEnd, ")", 0, 3},
		{MoveToken, "Nc6", 0, 3},
		{SuffixToken, "??", NAGBlunder, 3},
		{ResultToken, "1/2-1/2", 0, 3},
		{ResultToken, "*", 0, 3},
		{ResultToken, "1-0", 0, 3},
		{ResultToken, "0-1", 0, 3},
	}

	got := NewTokenizer(text, 1).Tokens()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Type != w.typ || g.Text != w.text || g.NAG != w.nag || g.Line != w.line {
			t.Errorf("token %d = %v (nag %d), want %s(%q) nag %d line %d",
				i, g, g.NAG, w.typ, w.text, w.nag, w.line)
		}
	}
}

func TestTokenizerSkipsNoise(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"move numbers", "12. e4 12... e5", []string{"e4", "e5"}},
		{"check markers", "Qxf7+ Kxf7# Bb5++", []string{"Qxf7", "Kxf7", "Bb5"}},
		{"glued number", "1.e4 1...e5", []string{"e4", "e5"}},
		{"stray brace", "e4 } e5", []string{"e4", "e5"}},
		{"bare dollar", "e4 $ e5", []string{"e4", "e5"}},
		{"digit free words", "Nf e4 ab", []string{"e4"}},
		{"malformed move with digit", "Zz9", []string{"Zz9"}},
		{"promotion", "e8=Q", []string{"e8=Q"}},
		{"long algebraic", "e2e4 e7-e5", []string{"e2e4", "e7-e5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tok := range NewTokenizer(tt.text, 1).Tokens() {
				got = append(got, tok.Text)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("tokens = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizerUnterminatedComment(t *testing.T) {
	got := NewTokenizer("e4 {runs off\nthe end", 1).Tokens()
	if len(got) != 2 {
		t.Fatalf("tokens = %v, want 2", got)
	}
	if got[1].Type != BraceComment || got[1].Text != "runs off the end" {
		t.Errorf("comment = %v", got[1])
	}
}

func TestTokenizerReset(t *testing.T) {
	z := NewTokenizer("e4 e5", 7)
	first := z.Next()
	z.Next()
	if tok := z.Next(); tok.Type != EOFToken {
		t.Fatalf("third token = %v, want EOF", tok)
	}
	z.Reset()
	again := z.Next()
	if again != first {
		t.Errorf("after Reset got %v, want %v", again, first)
	}
	if first.Line != 7 {
		t.Errorf("Line = %d, want 7", first.Line)
	}
}

func TestTokenizersAreIndependent(t *testing.T) {
	a := NewTokenizer("e4 e5", 1)
	b := NewTokenizer("e4 e5", 1)
	a.Next()
	if tok := b.Next(); tok.Text != "e4" {
		t.Errorf("second tokenizer started at %q", tok.Text)
	}
}

func TestSuffixToNAG(t *testing.T) {
	tests := map[string]int{"!": 1, "?": 2, "!!": 3, "??": 4, "!?": 5, "?!": 6, "!!!": 0}
	for in, want := range tests {
		if got := suffixToNAG(in); got != want {
			t.Errorf("suffixToNAG(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := MoveToken.String(); got != "MOVE" {
		t.Errorf("MoveToken.String() = %q", got)
	}
	if got := whitespace.String(); got != "UNKNOWN" {
		t.Errorf("whitespace.String() = %q, want UNKNOWN", got)
	}
}
