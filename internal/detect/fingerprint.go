package detect

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable content identifier for source text. Line
// endings, trailing whitespace, and trailing blank lines are normalized
// first so cosmetically different copies of the same code share a
// fingerprint.
func Fingerprint(text string) string {
	sum := blake2b.Sum256([]byte(normalizeForFingerprint(text)))
	return hex.EncodeToString(sum[:])
}

func normalizeForFingerprint(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
