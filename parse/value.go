package parse

import "github.com/tymlgo/tyml/tree"

// valueOutcome describes what scanValueInto found at a value position.
type valueOutcome int

const (
	// valueNone means nothing was found on this line; the value is
	// expected to arrive on a later, more-indented line.
	valueNone valueOutcome = iota
	// valueScalar means a scalar (plain, quoted or block) was placed
	// directly into the target node.
	valueScalar
	// valueAlias means an alias reference was recorded on the target
	// node's val side.
	valueAlias
	// valueContainerOpen means the value turned out to be a map or
	// sequence; a new frame for it has already been pushed.
	valueContainerOpen
)

// scanValueInto scans a value position for node id: any run of
// `!tag`/`&anchor` prefixes, then one of an alias, a quoted scalar, a
// block scalar header+body, a flow collection opener, a block mapping
// detected by lookahead (`key: ...` appearing right here, e.g. as a
// sequence item's inline value), or a plain scalar. indref is the
// reference indentation for continuation lines and nested frames.
func (p *Parser) scanValueInto(id tree.NodeID, indref int, inFlow bool) valueOutcome {
	for {
		switch p.peek() {
		case '!':
			p.t.SetValTag(id, span(p.scanTagToken()))
			p.skipInlineSpace()
			continue
		case '&':
			p.pos++
			p.t.SetValAnchor(id, span(p.scanName()))
			p.skipInlineSpace()
			continue
		}
		break
	}

	p.skipInlineSpace()
	if p.atCommentStart() || p.pos >= p.curLineEnd() {
		return valueNone
	}

	switch c := p.peek(); {
	case c == '*':
		p.pos++
		p.t.SetValRef(id, span(p.scanName()))
		return valueAlias
	case c == '\'' || c == '"':
		text := p.scanQuoted(p.pos - p.lineStart)
		p.t.ToVal(id, span([]byte(text)))
		return valueScalar
	case (c == '|' || c == '>') && !inFlow:
		style, chomp, explicitIndent := p.scanBlockHeader()
		text := p.scanBlockScalar(style, chomp, explicitIndent, indref)
		p.t.ToVal(id, span([]byte(text)))
		return valueScalar
	case c == '[':
		p.pos++
		p.t.ToSeq(id)
		p.push(&frame{flags: fRSEQ | fEXPL, nodeID: id, indref: indref})
		return valueContainerOpen
	case c == '{':
		p.pos++
		p.t.ToMap(id)
		p.push(&frame{flags: fRMAP | fEXPL, nodeID: id, indref: indref})
		return valueContainerOpen
	case !inFlow && p.looksLikeMapEntry(false):
		col := p.pos - p.lineStart
		p.t.ToMap(id)
		p.push(&frame{flags: fRMAP, nodeID: id, indref: col})
		p.handleMapBlockLine()
		return valueContainerOpen
	default:
		text := p.scanPlainScalar(indref, inFlow)
		p.t.ToVal(id, span([]byte(text)))
		return valueScalar
	}
}

// looksLikeMapEntry performs a non-committing trial scan from p.pos to
// decide whether the upcoming content is a mapping key (a scalar
// immediately followed by `:` plus whitespace/end-of-line), without
// consuming anything. inFlow additionally treats a flow indicator as
// disqualifying (used to recognise the single implicit map nested in a
// flow sequence, spec.md glossary "RSEQIMAP").
func (p *Parser) looksLikeMapEntry(inFlow bool) bool {
	savePos, saveLine, saveLS := p.pos, p.line, p.lineStart
	defer func() { p.pos, p.line, p.lineStart = savePos, saveLine, saveLS }()

	switch p.peek() {
	case '\'', '"':
		p.scanQuoted(0)
	case '!', '&', '*', '[', '{', '|', '>':
		return false
	default:
		end := p.curLineEnd()
		for p.pos < end {
			c := p.src[p.pos]
			if c == ':' && (p.pos+1 >= end || p.src[p.pos+1] == ' ' || p.src[p.pos+1] == '\t') {
				break
			}
			if inFlow && isFlowIndicator(c) {
				return false
			}
			if c == '#' && p.pos > savePos && (p.src[p.pos-1] == ' ' || p.src[p.pos-1] == '\t') {
				return false
			}
			p.pos++
		}
	}
	p.skipInlineSpace()
	end := p.curLineEnd()
	if p.pos >= end {
		return false
	}
	return p.src[p.pos] == ':' && (p.pos+1 >= end || p.src[p.pos+1] == ' ' || p.src[p.pos+1] == '\t')
}
