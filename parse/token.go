package parse

import (
	"strings"

	"github.com/tymlgo/tyml/scalarfilter"
	"github.com/tymlgo/tyml/tymlerr"
)

// peek returns the byte at p.pos, or 0 past end of input.
func (p *Parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *Parser) peekAt(off int) byte {
	i := p.pos + off
	if i < 0 || i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

// skipInlineSpace advances past spaces and tabs on the current line
// without crossing a newline.
func (p *Parser) skipInlineSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *Parser) atCommentStart() bool {
	return p.peek() == '#'
}

// consumeComment skips the rest of the current physical line.
func (p *Parser) consumeComment() {
	end, _ := lineBounds(p.src, p.lineStart)
	p.pos = end
}

// scanName scans a bare identifier-ish token (anchor/alias name, or
// the trailing part of a tag handle), stopping at whitespace, a flow
// indicator, or a `: ` / end-of-line key terminator.
func (p *Parser) scanName() []byte {
	start := p.pos
	i := start
	for i < len(p.src) {
		c := p.src[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		if c == ',' || c == '[' || c == ']' || c == '{' || c == '}' {
			break
		}
		if c == ':' && (i+1 >= len(p.src) || p.src[i+1] == ' ' || p.src[i+1] == '\t') {
			break
		}
		i++
	}
	p.pos = i
	return p.src[start:i]
}

// scanTagToken scans a `!...` tag token (shorthand `!!str`, verbatim
// `!<uri>`, or a bare `!local`), stopping at whitespace, at a ':'
// followed by whitespace or end of input, and, inside flow context
// only, at a flow indicator.
func (p *Parser) scanTagToken() []byte {
	start := p.pos
	i := start + 1
	inFlow := p.top().flags.has(fEXPL)
	for i < len(p.src) {
		c := p.src[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		if inFlow && isFlowIndicator(c) {
			break
		}
		if c == ':' && (i+1 >= len(p.src) || p.src[i+1] == ' ' || p.src[i+1] == '\t') {
			break
		}
		i++
	}
	p.pos = i
	return p.src[start:i]
}

// scanQuoted scans a quoted scalar starting at p.pos (which must point
// at the opening quote byte) and returns the normalised text, with
// p advanced past the closing quote. Embedded newlines (raw, or via a
// double-quoted line-continuation escape) update p.line/p.lineStart as
// they are consumed.
func (p *Parser) scanQuoted(refIndent int) string {
	quote := p.src[p.pos]
	startLine, startLineStart := p.line, p.lineStart
	start := p.pos + 1
	i := start
	for {
		if i >= len(p.src) {
			// Report at the opening quote, on the line it sits on.
			line, lineStart := p.line, p.lineStart
			p.line, p.lineStart = startLine, startLineStart
			p.fail(tymlerr.ReasonCodeSyntax, "unterminated quoted scalar")
			p.line, p.lineStart = line, lineStart
			p.pos = i
			break
		}
		c := p.src[i]
		if c == quote {
			if quote == '\'' && i+1 < len(p.src) && p.src[i+1] == '\'' {
				i += 2
				continue
			}
			break
		}
		if quote == '"' && c == '\\' && i+1 < len(p.src) {
			nc := p.src[i+1]
			if nc == '\r' {
				if i+2 < len(p.src) && p.src[i+2] == '\n' {
					i += 3
				} else {
					i += 2
				}
				p.line++
				p.lineStart = i
				continue
			}
			if nc == '\n' {
				i += 2
				p.line++
				p.lineStart = i
				continue
			}
			i += 2
			continue
		}
		if c == '\r' {
			if i+1 < len(p.src) && p.src[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			p.line++
			p.lineStart = i
			continue
		}
		if c == '\n' {
			i++
			p.line++
			p.lineStart = i
			continue
		}
		i++
	}
	raw := string(p.src[start:minInt(i, len(p.src))])
	if i < len(p.src) {
		p.pos = i + 1
	} else {
		p.pos = i
	}
	if quote == '\'' {
		return scalarfilter.SingleQuoted(raw, refIndent)
	}
	return scalarfilter.DoubleQuoted(raw, refIndent)
}

// scanPlainScalarLine scans a plain scalar chunk on the remainder of
// the current physical line, stopping at an unescaped `: ` / trailing
// `:`, a comment start, or (when inFlow) a flow indicator.
func (p *Parser) scanPlainScalarLine(inFlow bool) []byte {
	start := p.pos
	end, _ := lineBounds(p.src, p.lineStart)
	i := start
	for i < end {
		c := p.src[i]
		if c == ':' && (i+1 >= end || p.src[i+1] == ' ' || p.src[i+1] == '\t') {
			break
		}
		if c == '#' && i > start && (p.src[i-1] == ' ' || p.src[i-1] == '\t') {
			break
		}
		if inFlow && isFlowIndicator(c) {
			break
		}
		i++
	}
	chunk := trimTrailingSpace(p.src[start:i])
	p.pos = start + len(chunk)
	return chunk
}

// scanPlainScalar scans a (possibly multi-line) plain scalar starting
// at p.pos. Continuation onto later lines is decided purely by
// indentation against indref (spec.md §4.2.4's "design-level"
// framing is taken as licence to skip full lookahead disambiguation
// between a continued scalar and a new block token; a hard stop on a
// `---`/`...` document marker is kept since that case is unambiguous
// and cheap to special-case).
func (p *Parser) scanPlainScalar(indref int, inFlow bool) string {
	scalarCol := p.pos - p.lineStart
	chunk := p.scanPlainScalarLine(inFlow)
	parts := []string{string(chunk)}

	curEnd, _ := lineBounds(p.src, p.lineStart)
	for !inFlow && p.pos >= curEnd {
		_, next := lineBounds(p.src, p.lineStart)
		if next >= len(p.src) {
			break
		}
		end, _ := lineBounds(p.src, next)
		content := p.src[next:end]
		if isBlank(content) {
			p.line++
			p.lineStart = next
			p.pos = end
			parts = append(parts, "")
			curEnd = end
			continue
		}
		indent, _ := indentOf(p.src, next, end)
		if indent <= indref {
			break
		}
		trimmed := trimTrailingSpace(content[indent:])
		if startsWithDocMarker(trimmed) {
			break
		}
		p.line++
		p.lineStart = next
		p.pos = next + indent
		chunk = p.scanPlainScalarLine(false)
		parts = append(parts, string(chunk))
		curEnd, _ = lineBounds(p.src, p.lineStart)
	}
	raw := strings.Join(parts, "\n")
	return scalarfilter.Plain(raw, scalarCol)
}

func startsWithDocMarker(trimmed []byte) bool {
	ok, _ := lineMarker(trimmed, "---")
	if ok {
		return true
	}
	ok, _ = lineMarker(trimmed, "...")
	return ok
}

// lineMarker reports whether trimmed is exactly marker, or marker
// followed by a space and trailing content; it returns that trailing
// content (itself right-trimmed) when present.
func lineMarker(trimmed []byte, marker string) (bool, []byte) {
	m := len(marker)
	if len(trimmed) < m || string(trimmed[:m]) != marker {
		return false, nil
	}
	if len(trimmed) == m {
		return true, nil
	}
	if trimmed[m] == ' ' {
		return true, trimTrailingSpace(trimmed[m+1:])
	}
	return false, nil
}

// scanBlockHeader parses the style/chomp/explicit-indent portion of a
// `|`/`>` header, e.g. `|-`, `>2`, `|+2`, stopping at the comment or
// end of line.
func (p *Parser) scanBlockHeader() (style scalarfilter.BlockStyle, chomp scalarfilter.Chomp, explicitIndent int) {
	style = scalarfilter.BlockLiteral
	if p.src[p.pos] == '>' {
		style = scalarfilter.BlockFold
	}
	p.pos++
	chomp = scalarfilter.ChompClip
	for {
		switch p.peek() {
		case '-':
			chomp = scalarfilter.ChompStrip
			p.pos++
			continue
		case '+':
			chomp = scalarfilter.ChompKeep
			p.pos++
			continue
		}
		if c := p.peek(); c >= '1' && c <= '9' {
			explicitIndent = int(c - '0')
			p.pos++
			continue
		}
		break
	}
	p.skipInlineSpace()
	if p.atCommentStart() {
		p.consumeComment()
	}
	return style, chomp, explicitIndent
}

// scanBlockScalar consumes the body of a `|`/`>` block scalar (the
// header must already have been scanned) and returns the filtered
// text. parentIndent is the indentation column the block's own
// content must exceed when no explicit indent digit was given.
func (p *Parser) scanBlockScalar(style scalarfilter.BlockStyle, chomp scalarfilter.Chomp, explicitIndent, parentIndent int) string {
	refIndent := -1
	if explicitIndent > 0 {
		refIndent = parentIndent + explicitIndent
	}
	var lines [][]byte
	for {
		_, next := lineBounds(p.src, p.lineStart)
		if next >= len(p.src) {
			break
		}
		end, _ := lineBounds(p.src, next)
		content := p.src[next:end]
		blank := isBlank(content)
		if !blank {
			indent, _ := indentOf(p.src, next, end)
			if refIndent < 0 {
				if indent <= parentIndent {
					break
				}
				refIndent = indent
			}
			if indent < refIndent {
				break
			}
		}
		lines = append(lines, content)
		p.line++
		p.lineStart = next
		p.pos = end
	}
	if refIndent < 0 {
		refIndent = parentIndent + 1
	}
	var raw strings.Builder
	for _, l := range lines {
		raw.Write(l)
		raw.WriteByte('\n')
	}
	return scalarfilter.Block(raw.String(), refIndent, style, chomp)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
