// Package scalarfilter normalises the four YAML scalar styles after the
// scanner has captured a raw span (spec.md §4.3): plain, single-quoted,
// double-quoted and block scalars.
package scalarfilter

import "strings"

// Chomp selects the trailing-newline policy for a block scalar
// (spec.md §4.3, glossary "chomp indicator").
type Chomp int

const (
	// ChompClip keeps at most one trailing newline. This is the
	// default when no chomp indicator is present.
	ChompClip Chomp = iota
	// ChompStrip removes all trailing newlines.
	ChompStrip
	// ChompKeep keeps all trailing newlines.
	ChompKeep
)

// BlockStyle selects how a block scalar's internal newlines are
// rendered (spec.md §4.3).
type BlockStyle int

const (
	// BlockLiteral keeps newlines as-is ('|').
	BlockLiteral BlockStyle = iota
	// BlockFold collapses a single newline between non-empty lines to
	// a space, and N consecutive newlines to N-1 ('>').
	BlockFold
)

// Plain normalises a plain scalar's raw bytes: fold internal newlines
// (a single newline becomes a space, N consecutive newlines become
// N-1 literal newlines), strip per-line leading indentation up to
// refIndent, drop \r bytes, and trim trailing whitespace/newlines.
func Plain(raw string, refIndent int) string {
	stripped := stripIndentAndCR(raw, refIndent)
	folded := foldNewlines(stripped)
	return strings.TrimRight(folded, " \t\n")
}

// SingleQuoted normalises a single-quoted scalar's raw bytes (the text
// between, but not including, the surrounding quotes): collapse
// whitespace-indent on continuation lines, fold newlines by the Plain
// rule, and collapse '' to a single '.
func SingleQuoted(raw string, refIndent int) string {
	stripped := stripIndentAndCR(raw, refIndent)
	folded := foldNewlines(stripped)
	return strings.ReplaceAll(folded, "''", "'")
}

// DoubleQuoted normalises a double-quoted scalar's raw bytes (the text
// between, but not including, the surrounding quotes): collapse
// whitespace-indent on continuation lines, fold newlines by the Plain
// rule, and interpret \\, \", \n and a backslash-newline line
// continuation. Other escape sequences pass through unchanged, per
// spec.md §4.3.
func DoubleQuoted(raw string, refIndent int) string {
	stripped := stripIndentAndCR(raw, refIndent)
	// Drop backslash-newline continuations before folding, so the
	// escaped newline is not folded into a space.
	var b strings.Builder
	b.Grow(len(stripped))
	for i := 0; i < len(stripped); i++ {
		if stripped[i] == '\\' && i+1 < len(stripped) {
			if stripped[i+1] != '\n' {
				b.WriteByte('\\')
				b.WriteByte(stripped[i+1])
			}
			i++
			continue
		}
		b.WriteByte(stripped[i])
	}
	folded := foldNewlines(b.String())
	return unescapeDouble(folded)
}

func unescapeDouble(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch next {
		case '\\':
			b.WriteByte('\\')
			i++
		case '"':
			b.WriteByte('"')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case '\n':
			// Backslash immediately before a newline: delete both
			// bytes (a line-continuation escape).
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Block normalises a block scalar's raw body given its style and chomp
// indicator. First pass strips per-line leading indentation (up to
// refIndent) and drops \r; then folding is applied if style is
// BlockFold; then chomping.
func Block(raw string, refIndent int, style BlockStyle, chomp Chomp) string {
	stripped := stripIndentAndCR(raw, refIndent)

	var body string
	if style == BlockFold {
		body = foldBlockNewlines(stripped)
	} else {
		body = stripped
	}

	return applyChomp(body, chomp)
}

func applyChomp(s string, chomp Chomp) string {
	switch chomp {
	case ChompStrip:
		return strings.TrimRight(s, "\n")
	case ChompKeep:
		return s
	default: // ChompClip
		trimmed := strings.TrimRight(s, "\n")
		if trimmed == s {
			return s
		}
		return trimmed + "\n"
	}
}

// stripIndentAndCR removes up to refIndent leading spaces from every
// line and drops every \r byte.
func stripIndentAndCR(raw string, refIndent int) string {
	if refIndent <= 0 && !strings.ContainsRune(raw, '\r') {
		return raw
	}
	lines := splitKeepNewlines(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\r", "")
		stripped := stripLeadingSpaces(line, refIndent)
		b.WriteString(stripped)
	}
	return b.String()
}

// splitKeepNewlines splits s into lines, each retaining its trailing
// \n (the last line may have none).
func splitKeepNewlines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func stripLeadingSpaces(line string, n int) string {
	i := 0
	for i < len(line) && i < n && line[i] == ' ' {
		i++
	}
	return line[i:]
}

// foldNewlines implements the plain/quoted scalar newline-folding rule:
// a single newline becomes a space; N consecutive newlines become N-1
// literal newlines.
func foldNewlines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '\n' {
			b.WriteByte(s[i])
			i++
			continue
		}
		n := 0
		for i < len(s) && s[i] == '\n' {
			n++
			i++
		}
		if n == 1 {
			b.WriteByte(' ')
		} else {
			for k := 0; k < n-1; k++ {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// foldBlockNewlines implements the block-fold rule: a single newline
// between non-empty lines becomes a space; runs of N newlines become
// N-1 newlines; trailing newlines are preserved verbatim (chomping is
// applied afterwards by the caller).
func foldBlockNewlines(s string) string {
	trailing := 0
	for trailing < len(s) && s[len(s)-1-trailing] == '\n' {
		trailing++
	}
	body := s[:len(s)-trailing]
	folded := foldNewlines(body)
	return folded + strings.Repeat("\n", trailing)
}

// Idempotent reports whether running Plain (with refIndent 0) over a
// filter's output reproduces the same bytes. This is a test helper for
// spec.md §8's "scalar filter idempotence" property; the other filters
// are not re-run.
func Idempotent(filtered string) bool {
	return filtered == Plain(filtered, 0)
}
