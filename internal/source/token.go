package source

import (
	"strings"

	"aidetect/internal/profile"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenKeyword
	TokenNumber
	TokenString
	TokenComment
	TokenOperator
	TokenPunct
)

// Token is one element of the lexical view. Comment and string tokens carry
// their inner text with markers and quotes stripped.
type Token struct {
	Kind TokenKind
	Text string
	Line int // 1-based line where the token starts
}

const operatorChars = "+-*/%=<>!&|^~?:."

// Tokenize produces the lexical view of source text using the profile's
// comment and keyword tables. It never fails; unterminated constructs are
// consumed to the end of line or file.
func Tokenize(text string, p *profile.Profile) []Token {
	var tokens []Token
	line := 1
	i := 0
	n := len(text)

	emit := func(kind TokenKind, txt string, startLine int) {
		tokens = append(tokens, Token{Kind: kind, Text: txt, Line: startLine})
	}

	for i < n {
		c := text[i]

		if c == '\n' {
			line++
			i++
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			i++
			continue
		}

		// Triple-quoted strings (docstring-bearing languages) before plain quotes.
		if p.Docstring == profile.DocstringTripleQuote && (hasPrefixAt(text, i, `"""`) || hasPrefixAt(text, i, "'''")) {
			quote := text[i : i+3]
			start := line
			end := strings.Index(text[i+3:], quote)
			var body string
			if end == -1 {
				body = text[i+3:]
				i = n
			} else {
				body = text[i+3 : i+3+end]
				i += 3 + end + 3
			}
			line += strings.Count(body, "\n")
			emit(TokenString, strings.TrimSpace(body), start)
			continue
		}

		// Block comments.
		if open, close, ok := matchBlockComment(text, i, p); ok {
			start := line
			end := strings.Index(text[i+len(open):], close)
			var body string
			if end == -1 {
				body = text[i+len(open):]
				i = n
			} else {
				body = text[i+len(open) : i+len(open)+end]
				i += len(open) + end + len(close)
			}
			line += strings.Count(body, "\n")
			emit(TokenComment, strings.TrimSpace(body), start)
			continue
		}

		// Line comments. Prefer the longest marker so /// beats //.
		if marker := matchLineComment(text, i, p); marker != "" {
			eol := strings.IndexByte(text[i:], '\n')
			var body string
			if eol == -1 {
				body = text[i+len(marker):]
				i = n
			} else {
				body = text[i+len(marker) : i+eol]
				i += eol
			}
			emit(TokenComment, strings.TrimSpace(body), line)
			continue
		}

		// String literals.
		if c == '"' || c == '\'' || c == '`' {
			start := line
			body, consumed, newlines := scanString(text[i:], c)
			i += consumed
			line += newlines
			emit(TokenString, body, start)
			continue
		}

		// Numbers.
		if c >= '0' && c <= '9' {
			j := i + 1
			for j < n && isNumberChar(text[j]) {
				j++
			}
			emit(TokenNumber, text[i:j], line)
			i = j
			continue
		}

		// Identifiers and keywords.
		if isIdentStart(c) {
			j := i + 1
			for j < n && isIdentChar(text[j]) {
				j++
			}
			word := text[i:j]
			if p.IsKeyword(word) {
				emit(TokenKeyword, word, line)
			} else {
				emit(TokenIdent, word, line)
			}
			i = j
			continue
		}

		// Operators: maximal run of operator characters.
		if strings.IndexByte(operatorChars, c) >= 0 {
			j := i + 1
			for j < n && strings.IndexByte(operatorChars, text[j]) >= 0 {
				j++
			}
			emit(TokenOperator, text[i:j], line)
			i = j
			continue
		}

		// Everything else is punctuation, one byte at a time.
		emit(TokenPunct, string(c), line)
		i++
	}

	return tokens
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return strings.HasPrefix(s[i:], prefix)
}

func matchBlockComment(text string, i int, p *profile.Profile) (open, close string, ok bool) {
	for _, pair := range p.BlockComments {
		if len(pair) == 2 && hasPrefixAt(text, i, pair[0]) {
			return pair[0], pair[1], true
		}
	}
	return "", "", false
}

func matchLineComment(text string, i int, p *profile.Profile) string {
	best := ""
	for _, m := range p.LineComments {
		if hasPrefixAt(text, i, m) && len(m) > len(best) {
			best = m
		}
	}
	return best
}

// scanString consumes a quoted literal starting at s[0]==quote. Unterminated
// single-line strings stop at the newline so malformed input still tokenizes.
func scanString(s string, quote byte) (body string, consumed, newlines int) {
	multiline := quote == '`'
	j := 1
	for j < len(s) {
		c := s[j]
		if c == '\\' && j+1 < len(s) {
			j += 2
			continue
		}
		if c == quote {
			return s[1:j], j + 1, strings.Count(s[1:j], "\n")
		}
		if c == '\n' && !multiline {
			return s[1:j], j, 0
		}
		j++
	}
	return s[1:], len(s), strings.Count(s[1:], "\n")
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
		c == 'x' || c == 'X' || c == '.' || c == '_'
}
