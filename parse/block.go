package parse

import (
	"github.com/tymlgo/tyml/scalarfilter"
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

// handleMapBlockLine scans one `key: value` entry of a block (or flow)
// mapping, appending a new child of the current top frame's node. Works
// identically whether the top frame is a block map or a flow map (the
// only difference is whether scanValueInto/scanMapKeyInto stop at flow
// indicators), so it is reused by handleFlowToken too.
func (p *Parser) handleMapBlockLine() {
	f := p.top()
	inFlow := f.flags.has(fEXPL)

	entry := p.t.AppendChild(f.nodeID)
	p.scanMapKeyInto(entry, inFlow)
	p.skipInlineSpace()
	if p.peek() != ':' {
		p.fail(tymlerr.ReasonCodeSyntax, "expected ':' after mapping key")
		return
	}
	p.pos++

	outcome := p.scanValueInto(entry, f.indref, inFlow)
	switch outcome {
	case valueNone:
		p.push(&frame{flags: fRUNK, nodeID: entry, indref: f.indref})
	case valueContainerOpen:
		// Frame already pushed by scanValueInto.
	default:
		if !inFlow {
			p.skipTrailingComment()
		}
	}
}

// scanMapKeyInto scans a single mapping key (optional `!tag`/`&anchor`
// prefixes, an optional `? ` complex-key marker — accepted but not
// otherwise acted on, since the tree's key side is scalar-only, see
// DESIGN.md — then a quoted or plain scalar) and establishes id as a
// tentative null-valued entry with that key.
func (p *Parser) scanMapKeyInto(id tree.NodeID, inFlow bool) {
	for {
		switch p.peek() {
		case '!':
			p.t.SetKeyTag(id, span(p.scanTagToken()))
			p.skipInlineSpace()
			continue
		case '&':
			p.pos++
			p.t.SetKeyAnchor(id, span(p.scanName()))
			p.skipInlineSpace()
			continue
		case '?':
			if p.peekAt(1) == ' ' || p.peekAt(1) == '\t' || p.pos+1 >= p.curLineEnd() {
				p.pos++
				p.skipInlineSpace()
				continue
			}
		}
		break
	}

	var key string
	switch p.peek() {
	case '\'', '"':
		key = p.scanQuoted(p.pos - p.lineStart)
	default:
		key = scalarfilter.Plain(string(p.scanPlainScalarLine(inFlow)), 0)
	}
	p.t.ToKeyVal(id, span([]byte(key)), nil)
}

// handleSeqBlockLine scans one `- ` item of a block sequence (the top
// frame must already be fRSEQ; indentless and normal sequences are
// handled identically here, the distinction only matters to
// popToIndent).
func (p *Parser) handleSeqBlockLine() {
	f := p.top()
	if p.peek() != '-' {
		p.fail(tymlerr.ReasonCodeSyntax, "expected '-' to continue a block sequence")
		return
	}
	p.pos++
	if p.peek() == ' ' || p.peek() == '\t' {
		p.pos++
	}
	p.skipInlineSpace()

	item := p.t.AppendChild(f.nodeID)
	if p.atCommentStart() || p.pos >= p.curLineEnd() {
		p.skipTrailingComment()
		p.push(&frame{flags: fRUNK, nodeID: item, indref: f.indref})
		return
	}

	outcome := p.scanValueInto(item, f.indref, false)
	switch outcome {
	case valueNone:
		p.push(&frame{flags: fRUNK, nodeID: item, indref: f.indref})
	case valueContainerOpen:
		// Frame already pushed by scanValueInto.
	default:
		p.skipTrailingComment()
	}
}
