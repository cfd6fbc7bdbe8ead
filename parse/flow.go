package parse

// handleFlowToken dispatches one token of a flow collection (the top
// frame has fEXPL set). Indentation is irrelevant inside flow, so
// leading space on a continuation line is skipped here rather than by
// beginLine.
func (p *Parser) handleFlowToken() {
	p.skipInlineSpace()
	if p.pos >= p.curLineEnd() {
		return
	}
	if p.atCommentStart() {
		p.consumeComment()
		return
	}

	f := p.top()
	c := p.peek()

	if f.flags.has(fRSEQIMAP) && (c == ',' || c == ']') {
		// Closing the enclosing bracket, or moving to the next
		// sequence element, ends this single-entry implicit map first
		// (spec.md glossary "RSEQIMAP"); re-dispatch the same
		// character against the sequence frame underneath it.
		p.popFrame()
		return
	}

	switch c {
	case ']', '}':
		p.pos++
		p.popFrame()
	case ',':
		p.pos++
	default:
		if f.flags.has(fRSEQ) {
			p.handleFlowSeqElement(f)
		} else {
			p.handleMapBlockLine()
		}
	}
}

// handleFlowSeqElement scans one element of a flow sequence. When the
// element looks like `key: value` it is wrapped in a one-entry
// implicit map (RSEQIMAP) instead of being parsed as a bare scalar.
func (p *Parser) handleFlowSeqElement(f *frame) {
	item := p.t.AppendChild(f.nodeID)
	if p.looksLikeMapEntry(true) {
		p.t.ToMap(item)
		p.push(&frame{flags: fRMAP | fEXPL | fRSEQIMAP, nodeID: item, indref: f.indref})
		p.handleMapBlockLine()
		return
	}
	p.scanValueInto(item, f.indref, true)
}
