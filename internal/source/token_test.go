package source

import (
	"testing"

	"aidetect/internal/profile"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func filterKind(tokens []Token, kind TokenKind) []Token {
	var out []Token
	for _, t := range tokens {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func TestTokenizeGoSnippet(t *testing.T) {
	p := profile.Resolve("go", "")
	src := "// adds two ints\nfunc add(a, b int) int {\n\treturn a + b\n}\n"

	tokens := Tokenize(src, p)

	comments := filterKind(tokens, TokenComment)
	if len(comments) != 1 {
		t.Fatalf("want 1 comment, got %d", len(comments))
	}
	if comments[0].Text != "adds two ints" {
		t.Errorf("comment text = %q, want marker stripped", comments[0].Text)
	}
	if comments[0].Line != 1 {
		t.Errorf("comment line = %d, want 1", comments[0].Line)
	}

	var sawFunc, sawReturn bool
	for _, tok := range filterKind(tokens, TokenKeyword) {
		switch tok.Text {
		case "func":
			sawFunc = true
		case "return":
			sawReturn = true
		}
	}
	if !sawFunc || !sawReturn {
		t.Error("func and return should tokenize as keywords")
	}

	idents := filterKind(tokens, TokenIdent)
	names := map[string]bool{}
	for _, id := range idents {
		names[id.Text] = true
	}
	for _, want := range []string{"add", "a", "b", "int"} {
		if !names[want] {
			t.Errorf("missing identifier %q", want)
		}
	}
}

func TestTokenizePythonDocstring(t *testing.T) {
	p := profile.Resolve("python", "")
	src := "def f():\n    \"\"\"Process the data.\n    Returns the result.\"\"\"\n    return 1\n"

	tokens := Tokenize(src, p)

	strs := filterKind(tokens, TokenString)
	if len(strs) != 1 {
		t.Fatalf("want 1 string token for the docstring, got %d", len(strs))
	}
	if strs[0].Line != 2 {
		t.Errorf("docstring starts on line %d, want 2", strs[0].Line)
	}
	if got := strs[0].Text; got == "" || got[:7] != "Process" {
		t.Errorf("docstring text = %q, want inner content", got)
	}
}

func TestTokenizeLineNumbersAcrossMultilineConstructs(t *testing.T) {
	p := profile.Resolve("go", "")
	src := "/* one\ntwo\nthree */\nx := 1\n"

	tokens := Tokenize(src, p)
	if len(tokens) == 0 {
		t.Fatal("no tokens")
	}
	if tokens[0].Kind != TokenComment || tokens[0].Line != 1 {
		t.Errorf("block comment: kind=%v line=%d", tokens[0].Kind, tokens[0].Line)
	}

	idents := filterKind(tokens, TokenIdent)
	if len(idents) != 1 || idents[0].Text != "x" {
		t.Fatalf("want one identifier x, got %v", idents)
	}
	if idents[0].Line != 4 {
		t.Errorf("x on line %d, want 4", idents[0].Line)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	p := profile.Resolve("python", "")
	src := "s = \"no closing quote\nprint(s)\n"

	tokens := Tokenize(src, p)

	// Must not lose the rest of the file.
	var sawPrint bool
	for _, tok := range tokens {
		if tok.Kind == TokenIdent && tok.Text == "print" {
			sawPrint = true
		}
	}
	if !sawPrint {
		t.Error("tokens after an unterminated string were dropped")
	}
}

func TestTokenizeOperatorsMaximalRun(t *testing.T) {
	p := profile.Resolve("go", "")
	tokens := Tokenize("a && b || c != d", p)

	var ops []string
	for _, tok := range filterKind(tokens, TokenOperator) {
		ops = append(ops, tok.Text)
	}
	want := []string{"&&", "||", "!="}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, ops[i], want[i])
		}
	}
}

func TestTokenizePreservesCommentMarkerPrecedence(t *testing.T) {
	p := profile.Resolve("rust", "")
	tokens := Tokenize("/// doc comment\nfn main() {}\n", p)

	comments := filterKind(tokens, TokenComment)
	if len(comments) != 1 {
		t.Fatalf("want 1 comment, got %d", len(comments))
	}
	if comments[0].Text != "doc comment" {
		t.Errorf("longest marker should win: got %q", comments[0].Text)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	p := profile.Resolve("go", "")
	if tokens := Tokenize("", p); len(tokens) != 0 {
		t.Errorf("empty input produced %d tokens", len(tokens))
	}
	if tokens := Tokenize("   \n\t\n", p); len(tokens) != 0 {
		t.Errorf("whitespace-only input produced %d tokens", len(tokens))
	}
}
