// Package source builds the per-analysis view of one file: a token stream
// always, plus a lightweight structural view when a tree-sitter grammar is
// wired for the language and the input parses cleanly.
//
// Parsing never fails. Malformed input simply loses the structural view and
// the unit is marked degraded; code that does not compile is still a valid
// input here.
package source

import (
	"context"
	"strings"

	"aidetect/internal/profile"
)

// IdentRole classifies where an identifier was declared.
type IdentRole int

const (
	RoleVariable IdentRole = iota
	RoleFunction
	RoleParameter
)

func (r IdentRole) String() string {
	switch r {
	case RoleFunction:
		return "function"
	case RoleParameter:
		return "parameter"
	default:
		return "variable"
	}
}

// Identifier is a declared name found in the structural view.
type Identifier struct {
	Name string
	Role IdentRole
	Line int
}

// Function is a function or method found in the structural view.
type Function struct {
	Name         string
	StartLine    int
	EndLine      int
	HasDocstring bool
	Docstring    string
}

// Structure is the abstract-syntax view consumed by the structure-dependent
// analyzers. Counts are file-global.
type Structure struct {
	Functions   []Function
	Identifiers []Identifier

	// Decisions counts conditionals, loops, and switch/match arms
	Decisions int
	// BoolOps counts short-circuit boolean operators
	BoolOps int
	// MaxNesting is the deepest block nesting in the file
	MaxNesting int
}

// Unit is the immutable input to the analyzers: one file, one analysis call.
type Unit struct {
	Raw     string
	Lines   []string
	Profile *profile.Profile
	Tokens  []Token

	// Structure is nil when only the lexical view is available
	Structure *Structure
	// ParseNote records why the structural view is missing
	ParseNote string
}

// Degraded reports whether analysis fell back to lexical/text techniques,
// either because the language was unrecognized or because structural
// parsing was unavailable or failed.
func (u *Unit) Degraded() bool {
	return u.Profile.Generic || u.Structure == nil
}

// Parse builds the unit for one source text. The token stream is always
// produced; the structural pass is attempted only when the profile has a
// grammar wired and silently falls back on failure.
func Parse(ctx context.Context, text string, p *profile.Profile) *Unit {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	u := &Unit{
		Raw:     normalized,
		Lines:   strings.Split(normalized, "\n"),
		Profile: p,
		Tokens:  Tokenize(normalized, p),
	}

	switch {
	case p.Generic:
		u.ParseNote = "unrecognized language, lexical analysis only"
	case !p.Structural:
		u.ParseNote = "no structural grammar for " + p.Name + ", lexical analysis only"
	case !StructuralAvailable():
		u.ParseNote = "structural parsing not available in this build"
	default:
		st, err := parseStructural(ctx, normalized, p)
		if err != nil {
			u.ParseNote = err.Error()
		} else {
			u.Structure = st
		}
	}

	return u
}

// NonBlankLines returns the number of lines containing any non-whitespace.
func (u *Unit) NonBlankLines() int {
	count := 0
	for _, line := range u.Lines {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// CommentTokens returns all comment tokens in order.
func (u *Unit) CommentTokens() []Token {
	var out []Token
	for _, t := range u.Tokens {
		if t.Kind == TokenComment {
			out = append(out, t)
		}
	}
	return out
}
