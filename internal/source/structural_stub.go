//go:build !cgo

package source

import (
	"context"
	"errors"

	"aidetect/internal/profile"
)

// StructuralAvailable reports whether the tree-sitter pass is compiled in.
// Returns false when CGO is disabled.
func StructuralAvailable() bool {
	return false
}

func parseStructural(ctx context.Context, text string, p *profile.Profile) (*Structure, error) {
	return nil, errors.New("structural parsing not available in this build")
}
