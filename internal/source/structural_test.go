//go:build cgo

package source

import (
	"context"
	"strings"
	"testing"

	"aidetect/internal/profile"
)

const pySample = `def process_data(input_list):
    """Process the input data and return results."""
    result = []
    for item in input_list:
        if item > 0 and item < 100:
            result.append(item * 2)
    return result

def main():
    data = [1, 2, 3]
    print(process_data(data))
`

func TestParsePythonStructure(t *testing.T) {
	p := profile.Resolve("python", "")
	u := Parse(context.Background(), pySample, p)

	if u.Structure == nil {
		t.Fatalf("structural view missing: %s", u.ParseNote)
	}
	if u.Degraded() {
		t.Error("clean python parse should not degrade")
	}

	st := u.Structure
	if len(st.Functions) != 2 {
		t.Fatalf("functions = %d, want 2", len(st.Functions))
	}
	if st.Functions[0].Name != "process_data" {
		t.Errorf("first function = %q", st.Functions[0].Name)
	}
	if !st.Functions[0].HasDocstring {
		t.Error("process_data has a docstring")
	}
	if !strings.Contains(st.Functions[0].Docstring, "Process the input data") {
		t.Errorf("docstring text = %q", st.Functions[0].Docstring)
	}
	if st.Functions[1].HasDocstring {
		t.Error("main has no docstring")
	}

	// One for, one if, plus the boolean and.
	if st.Decisions < 2 {
		t.Errorf("decisions = %d, want at least 2", st.Decisions)
	}
	if st.BoolOps != 1 {
		t.Errorf("bool ops = %d, want 1", st.BoolOps)
	}
	if st.MaxNesting < 2 {
		t.Errorf("max nesting = %d, want at least 2 (if inside for)", st.MaxNesting)
	}

	var params, vars, funcs int
	for _, id := range st.Identifiers {
		switch id.Role {
		case RoleParameter:
			params++
		case RoleVariable:
			vars++
		case RoleFunction:
			funcs++
		}
	}
	if funcs != 2 {
		t.Errorf("function identifiers = %d, want 2", funcs)
	}
	if params == 0 {
		t.Error("input_list should be recorded as a parameter")
	}
	if vars == 0 {
		t.Error("result and data should be recorded as variables")
	}
}

func TestParseGoStructure(t *testing.T) {
	p := profile.Resolve("go", "")
	src := `package main

// add returns the sum of a and b.
func add(a, b int) int {
	if a > 0 && b > 0 {
		return a + b
	}
	return 0
}
`
	u := Parse(context.Background(), src, p)
	if u.Structure == nil {
		t.Fatalf("structural view missing: %s", u.ParseNote)
	}

	st := u.Structure
	if len(st.Functions) != 1 || st.Functions[0].Name != "add" {
		t.Fatalf("functions = %+v", st.Functions)
	}
	if !st.Functions[0].HasDocstring {
		t.Error("leading comment should count as documentation")
	}
	if st.BoolOps != 1 {
		t.Errorf("bool ops = %d, want 1", st.BoolOps)
	}
}

func TestParseSyntaxErrorFallsBack(t *testing.T) {
	p := profile.Resolve("python", "")
	u := Parse(context.Background(), "def broken(:\n    pass\n", p)

	if u.Structure != nil {
		t.Error("syntax errors must drop the structural view")
	}
	if !u.Degraded() {
		t.Error("parse failure must degrade")
	}
	if u.ParseNote == "" {
		t.Error("parse failure should leave a note")
	}
	if len(u.Tokens) == 0 {
		t.Error("lexical view survives a structural failure")
	}
}

func TestParseDeterministic(t *testing.T) {
	p := profile.Resolve("python", "")
	first := Parse(context.Background(), pySample, p)
	for i := 0; i < 3; i++ {
		again := Parse(context.Background(), pySample, p)
		if len(again.Tokens) != len(first.Tokens) {
			t.Fatal("token count changed between runs")
		}
		if again.Structure == nil || first.Structure == nil {
			t.Fatal("structure missing on a repeat run")
		}
		if again.Structure.Decisions != first.Structure.Decisions ||
			again.Structure.BoolOps != first.Structure.BoolOps ||
			again.Structure.MaxNesting != first.Structure.MaxNesting ||
			len(again.Structure.Identifiers) != len(first.Structure.Identifiers) {
			t.Fatal("structural counts changed between runs")
		}
	}
}
