package emit

import (
	"strconv"
	"strings"
)

// quoteStyle selects how a scalar's text should be rendered.
type quoteStyle int

const (
	quoteNone quoteStyle = iota
	quoteSingle
	quoteDouble
	quoteBlockLiteral
)

// chooseQuote implements spec.md §4.5's scalar-quoting predicate for
// YAML output.
func chooseQuote(s string) quoteStyle {
	if strings.Contains(s, "\n") && !needsSurroundingWhitespaceQuote(s) {
		return quoteBlockLiteral
	}
	if isPlainSafe(s) {
		return quoteNone
	}
	hasSingle := strings.ContainsRune(s, '\'')
	hasDouble := strings.ContainsRune(s, '"')
	if hasSingle && !hasDouble {
		return quoteDouble
	}
	return quoteSingle
}

// isPlainSafe reports whether s can be emitted unquoted: it is a
// recognisable number, or it contains no YAML special characters and
// no leading/trailing whitespace and no newlines.
func isPlainSafe(s string) bool {
	if s == "" {
		return false
	}
	if isNumber(s) {
		return true
	}
	if strings.ContainsAny(s, "\n") {
		return false
	}
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return false
	}
	if strings.ContainsAny(s, ":#{}[],&*!|>'\"%@`") {
		return false
	}
	switch s {
	case "~", "null", "Null", "NULL", "true", "false", "True", "False", "TRUE", "FALSE":
		return false
	}
	return true
}

func isNumber(s string) bool {
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

func needsSurroundingWhitespaceQuote(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			return true
		}
	}
	return false
}

// quoteSingleQuoted renders s as a single-quoted scalar, doubling every
// inner ' and every inner \n. The \n doubling matters even when s has
// no embedded newline-folding ambiguity from quotes: a bare \n inside
// single quotes folds to a space on re-parse (scalarfilter's single-
// quote folding rule), so a line break must always be written as two
// newlines (a blank line) to survive a parse/emit round trip.
func quoteSingleQuoted(s string) string {
	doubled := strings.ReplaceAll(s, "'", "''")
	doubled = strings.ReplaceAll(doubled, "\n", "\n\n")
	return "'" + doubled + "'"
}

// quoteDoubleQuoted renders s as a double-quoted scalar, escaping \ and
// " and writing each newline as the two-character \n escape. chooseQuote
// selects this form when s contains a ' but no ".
func quoteDoubleQuoted(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// blockChomp derives the chomp indicator from the scalar's trailing
// newline count: 0 -> "-", 1 -> "", >=2 -> "+" (spec.md §4.5).
func blockChomp(s string) string {
	n := 0
	for n < len(s) && s[len(s)-1-n] == '\n' {
		n++
	}
	switch {
	case n == 0:
		return "-"
	case n == 1:
		return ""
	default:
		return "+"
	}
}

// renderScalar renders s as the exact bytes to place after the
// `key: `/`- ` prefix (or as a bare document scalar), given the
// surrounding indent for block-scalar continuation lines.
func renderScalar(s string, indent int) string {
	switch chooseQuote(s) {
	case quoteNone:
		return s
	case quoteSingle:
		return quoteSingleQuoted(s)
	case quoteDouble:
		return quoteDoubleQuoted(s)
	case quoteBlockLiteral:
		return renderBlockLiteral(s, indent)
	}
	return s
}

func renderBlockLiteral(s string, indent int) string {
	chomp := blockChomp(s)
	pad := strings.Repeat(" ", indent+2)
	body := strings.TrimRight(s, "\n")
	lines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString("|")
	b.WriteString(chomp)
	for _, line := range lines {
		b.WriteByte('\n')
		if line != "" {
			b.WriteString(pad)
			b.WriteString(line)
		}
	}
	return b.String()
}
