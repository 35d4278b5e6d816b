package profile

import (
	"testing"
)

func TestResolveByLanguageHint(t *testing.T) {
	tests := []struct {
		hint string
		want string
	}{
		{"python", "Python"},
		{"py", "Python"},
		{"Python", "Python"},
		{"go", "Go"},
		{"golang", "Go"},
		{"js", "JavaScript"},
		{"typescript", "TypeScript"},
		{"rust", "Rust"},
	}

	for _, tt := range tests {
		p := Resolve(tt.hint, "")
		if p.Name != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.hint, p.Name, tt.want)
		}
		if p.Generic {
			t.Errorf("Resolve(%q) should not be generic", tt.hint)
		}
	}
}

func TestResolveByExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.py", "Python"},
		{"server.go", "Go"},
		{"app.jsx", "JavaScript"},
		{"component.tsx", "React TSX"},
		{"Main.java", "Java"},
		{"lib.rs", "Rust"},
		{"script.rb", "Ruby"},
		{"index.php", "PHP"},
	}

	for _, tt := range tests {
		p := Resolve("", tt.filename)
		if p.Name != tt.want {
			t.Errorf("Resolve(file=%q) = %s, want %s", tt.filename, p.Name, tt.want)
		}
	}
}

func TestLanguageHintWinsOverExtension(t *testing.T) {
	p := Resolve("python", "weird.js")
	if p.Name != "Python" {
		t.Errorf("explicit hint should win, got %s", p.Name)
	}
}

func TestResolveUnknownNeverFails(t *testing.T) {
	for _, args := range [][2]string{
		{"", ""},
		{"cobol", "payroll.cbl"},
		{"", "README.nonsense"},
	} {
		p := Resolve(args[0], args[1])
		if p == nil {
			t.Fatalf("Resolve(%q, %q) returned nil", args[0], args[1])
		}
		if !p.Generic {
			t.Errorf("Resolve(%q, %q) should be the generic profile", args[0], args[1])
		}
		if len(p.LineComments) == 0 {
			t.Error("generic profile must still recognize comments")
		}
		if len(p.DecisionKeywords) == 0 {
			t.Error("generic profile must still count decision keywords")
		}
	}
}

func TestProfilesComplete(t *testing.T) {
	for _, id := range IDs() {
		p, ok := ByID(id)
		if !ok {
			t.Fatalf("ByID(%q) missing", id)
		}
		if p.Name == "" {
			t.Errorf("%s: missing name", id)
		}
		if len(p.Extensions) == 0 {
			t.Errorf("%s: no extensions", id)
		}
		if len(p.LineComments) == 0 {
			t.Errorf("%s: no line comment markers", id)
		}
		if len(p.DecisionKeywords) == 0 {
			t.Errorf("%s: no decision keywords", id)
		}
		if len(p.Keywords) == 0 {
			t.Errorf("%s: no keyword set", id)
		}
		if p.IndentWidth <= 0 {
			t.Errorf("%s: bad indent width %d", id, p.IndentWidth)
		}
	}
}

func TestMatchesFunction(t *testing.T) {
	py := Resolve("python", "")
	if !py.MatchesFunction("def handle_request(req):") {
		t.Error("python def should match")
	}
	if !py.MatchesFunction("    async def fetch(url):") {
		t.Error("async def should match")
	}
	if py.MatchesFunction("defer cleanup()") {
		t.Error("defer should not match python def")
	}

	goP := Resolve("go", "")
	if !goP.MatchesFunction("func (s *Server) Start() error {") {
		t.Error("go method should match")
	}
}

func TestKeywordAndOperatorLookups(t *testing.T) {
	py := Resolve("python", "")
	if !py.IsKeyword("def") || py.IsKeyword("banana") {
		t.Error("keyword lookup broken")
	}
	if !py.IsDecisionKeyword("elif") || py.IsDecisionKeyword("return") {
		t.Error("decision keyword lookup broken")
	}
	if !py.IsBoolOperator("and") || py.IsBoolOperator("&&") {
		t.Error("python short-circuit operators are and/or")
	}

	goP := Resolve("go", "")
	if !goP.IsBoolOperator("&&") || goP.IsBoolOperator("and") {
		t.Error("go short-circuit operators are && and ||")
	}
}
