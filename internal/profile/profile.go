// Package profile maps language hints and file extensions to the syntax
// rules the analyzers need: comment markers, docstring conventions,
// decision-point keywords, and indentation conventions.
//
// The per-language tables live in an embedded TOML file so the profile set
// can be extended without touching resolver logic. Resolution never fails;
// unknown languages get a minimal generic profile flagged as such.
package profile

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed profiles.toml
var profilesTOML []byte

// DocstringStyle identifies how a language attaches documentation to functions.
type DocstringStyle string

const (
	// DocstringTripleQuote is a string literal as the first statement of a
	// function body (Python)
	DocstringTripleQuote DocstringStyle = "triple-quote"
	// DocstringLeadingComment is a comment block immediately before the
	// function declaration (Go, JavaScript, Java, ...)
	DocstringLeadingComment DocstringStyle = "leading-comment"
	// DocstringNone means the language has no docstring convention
	DocstringNone DocstringStyle = ""
)

// Profile describes the syntax rules for one language.
type Profile struct {
	ID         string         `toml:"-"`
	Name       string         `toml:"name"`
	Extensions []string       `toml:"extensions"`
	Aliases    []string       `toml:"aliases"`
	Docstring  DocstringStyle `toml:"docstring"`

	// LineComments are markers that start a comment running to end of line
	LineComments []string `toml:"line_comments"`
	// BlockComments are open/close marker pairs
	BlockComments [][]string `toml:"block_comments"`

	// DecisionKeywords are counted as decision points for cyclomatic
	// complexity in the lexical fallback
	DecisionKeywords []string `toml:"decision_keywords"`
	// BoolOperators are short-circuit operators counted as decision points
	BoolOperators []string `toml:"bool_operators"`
	// Keywords is the reserved-word set used to separate keywords from
	// identifiers in the token stream
	Keywords []string `toml:"keywords"`

	IndentWidth     int    `toml:"indent_width"`
	FunctionPattern string `toml:"function_pattern"`

	// Structural reports whether a tree-sitter grammar is wired for this
	// language
	Structural bool `toml:"structural"`
	// Generic marks the fallback profile for unrecognized languages
	Generic bool `toml:"-"`

	funcRe     *regexp.Regexp
	keywordSet map[string]struct{}
}

type profileFile struct {
	Languages map[string]*Profile `toml:"languages"`
}

var (
	loadOnce sync.Once
	byID     map[string]*Profile
	byHint   map[string]*Profile
	byExt    map[string]*Profile
)

func load() {
	var pf profileFile
	if err := toml.Unmarshal(profilesTOML, &pf); err != nil {
		// The embedded table is part of the build; a decode failure is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("profile: invalid embedded profiles.toml: %v", err))
	}

	byID = make(map[string]*Profile, len(pf.Languages))
	byHint = make(map[string]*Profile)
	byExt = make(map[string]*Profile)

	for id, p := range pf.Languages {
		p.ID = id
		p.compile()
		byID[id] = p
		byHint[id] = p
		byHint[strings.ToLower(p.Name)] = p
		for _, a := range p.Aliases {
			byHint[strings.ToLower(a)] = p
		}
		for _, ext := range p.Extensions {
			byExt[strings.ToLower(ext)] = p
		}
	}
}

func (p *Profile) compile() {
	if p.FunctionPattern != "" {
		p.funcRe = regexp.MustCompile(p.FunctionPattern)
	}
	p.keywordSet = make(map[string]struct{}, len(p.Keywords))
	for _, kw := range p.Keywords {
		p.keywordSet[kw] = struct{}{}
	}
	if p.IndentWidth <= 0 {
		p.IndentWidth = 4
	}
}

// Resolve maps a language hint and/or filename to a profile. Either argument
// may be empty. Resolution never fails: when nothing matches, the generic
// profile is returned with Generic set.
func Resolve(languageHint, filenameHint string) *Profile {
	loadOnce.Do(load)

	if hint := strings.ToLower(strings.TrimSpace(languageHint)); hint != "" {
		if p, ok := byHint[hint]; ok {
			return p
		}
	}
	if filenameHint != "" {
		ext := strings.ToLower(filepath.Ext(filenameHint))
		if p, ok := byExt[ext]; ok {
			return p
		}
	}
	return genericProfile()
}

// ByID returns the profile registered under the given identifier.
func ByID(id string) (*Profile, bool) {
	loadOnce.Do(load)
	p, ok := byID[id]
	return p, ok
}

// IDs returns the identifiers of all registered language profiles.
func IDs() []string {
	loadOnce.Do(load)
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	return ids
}

var (
	genericOnce sync.Once
	generic     *Profile
)

// genericProfile treats the most common comment markers as comments and
// falls back to brace/keyword heuristics for decision points.
func genericProfile() *Profile {
	genericOnce.Do(func() {
		generic = &Profile{
			ID:            "generic",
			Name:          "Unknown",
			LineComments:  []string{"//", "#"},
			BlockComments: [][]string{{"/*", "*/"}},
			DecisionKeywords: []string{
				"if", "elif", "elsif", "elseif", "for", "foreach", "while",
				"do", "case", "when", "catch", "except", "rescue",
			},
			BoolOperators: []string{"&&", "||", "and", "or"},
			Keywords: []string{
				"if", "else", "for", "while", "do", "switch", "case",
				"return", "function", "def", "class", "try", "catch",
				"import", "true", "false", "null", "nil",
			},
			IndentWidth: 4,
			Generic:     true,
		}
		generic.compile()
	})
	return generic
}

// IsKeyword reports whether word is reserved in this language.
func (p *Profile) IsKeyword(word string) bool {
	_, ok := p.keywordSet[word]
	return ok
}

// MatchesFunction reports whether a source line looks like a function
// declaration. Used by the lexical fallback when no structural view exists.
func (p *Profile) MatchesFunction(line string) bool {
	if p.funcRe == nil {
		return false
	}
	return p.funcRe.MatchString(line)
}

// IsDecisionKeyword reports whether word counts as a decision point.
func (p *Profile) IsDecisionKeyword(word string) bool {
	for _, kw := range p.DecisionKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

// IsBoolOperator reports whether op is a short-circuit boolean operator.
func (p *Profile) IsBoolOperator(op string) bool {
	for _, b := range p.BoolOperators {
		if op == b {
			return true
		}
	}
	return false
}
