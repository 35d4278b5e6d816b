package source

import (
	"context"
	"strings"
	"testing"

	"aidetect/internal/profile"
)

func TestParseGenericProfileIsDegraded(t *testing.T) {
	p := profile.Resolve("cobol", "")
	u := Parse(context.Background(), "MOVE A TO B.\n", p)

	if !u.Degraded() {
		t.Error("unknown language must degrade")
	}
	if u.Structure != nil {
		t.Error("generic profile should never get a structural view")
	}
	if u.ParseNote == "" {
		t.Error("degraded unit should carry a parse note")
	}
	if len(u.Tokens) == 0 {
		t.Error("lexical view must still be produced")
	}
}

func TestParseNonStructuralLanguageIsDegraded(t *testing.T) {
	p := profile.Resolve("ruby", "")
	u := Parse(context.Background(), "def greet\n  puts 'hi'\nend\n", p)

	if u.Structure != nil {
		t.Error("ruby has no grammar wired, structure must be nil")
	}
	if !u.Degraded() {
		t.Error("missing structural view must degrade")
	}
	if !strings.Contains(u.ParseNote, "Ruby") {
		t.Errorf("parse note should name the language, got %q", u.ParseNote)
	}
}

func TestParseNormalizesCRLF(t *testing.T) {
	p := profile.Resolve("python", "")
	u := Parse(context.Background(), "a = 1\r\nb = 2\r\n", p)

	if strings.Contains(u.Raw, "\r") {
		t.Error("raw text should be LF-normalized")
	}
	if len(u.Lines) != 3 {
		t.Errorf("lines = %d, want 3 (two content lines plus trailing)", len(u.Lines))
	}
}

func TestNonBlankLines(t *testing.T) {
	p := profile.Resolve("go", "")
	u := Parse(context.Background(), "a\n\n  \nb\nc\n", p)

	if got := u.NonBlankLines(); got != 3 {
		t.Errorf("NonBlankLines = %d, want 3", got)
	}
}

func TestCommentTokens(t *testing.T) {
	p := profile.Resolve("go", "")
	u := Parse(context.Background(), "// first\nx := 1 // second\n/* third */\n", p)

	comments := u.CommentTokens()
	if len(comments) != 3 {
		t.Fatalf("comments = %d, want 3", len(comments))
	}
	want := []string{"first", "second", "third"}
	for i, c := range comments {
		if c.Text != want[i] {
			t.Errorf("comment[%d] = %q, want %q", i, c.Text, want[i])
		}
	}
}
