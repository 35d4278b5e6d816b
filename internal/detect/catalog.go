package detect

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// patternFamily is one group of stereotyped fragments. A family contributes
// its score at most once per file, when at least MinMatches of its patterns
// hit.
type patternFamily struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Score       int      `yaml:"score"`
	MinMatches  int      `yaml:"min_matches"`
	Languages   []string `yaml:"languages"`
	Patterns    []string `yaml:"patterns"`

	compiled []*regexp.Regexp
}

type patternCatalog struct {
	Families []*patternFamily `yaml:"families"`
}

var (
	catalogOnce sync.Once
	catalog     *patternCatalog
)

func loadCatalog() *patternCatalog {
	catalogOnce.Do(func() {
		var c patternCatalog
		if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
			panic(fmt.Sprintf("detect: invalid embedded catalog.yaml: %v", err))
		}
		for _, f := range c.Families {
			if f.MinMatches < 1 {
				f.MinMatches = 1
			}
			for _, p := range f.Patterns {
				f.compiled = append(f.compiled, regexp.MustCompile("(?m)"+p))
			}
		}
		catalog = &c
	})
	return catalog
}

// appliesTo reports whether the family is active for a language. Families
// without a language list apply everywhere.
func (f *patternFamily) appliesTo(languageID string) bool {
	if len(f.Languages) == 0 {
		return true
	}
	for _, l := range f.Languages {
		if l == languageID {
			return true
		}
	}
	return false
}

// matches counts total pattern occurrences in the text across the family.
func (f *patternFamily) matches(text string) int {
	hits := 0
	for _, re := range f.compiled {
		hits += len(re.FindAllString(text, -1))
	}
	return hits
}
