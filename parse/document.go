package parse

import "github.com/tymlgo/tyml/tymlerr"

// beginLine runs the start-of-physical-line logic (spec.md §4.2.4):
// blank/comment/directive skipping, document separator recognition,
// and indentation-driven frame popping. It returns true when the
// whole line was consumed by this logic (nothing left to dispatch),
// false when p.pos now sits at real content for step() to handle.
func (p *Parser) beginLine() bool {
	end := p.curLineEnd()
	raw := p.src[p.lineStart:end]
	trimmed := trimTrailingSpace(raw)

	switch {
	case len(trimmed) == 0:
		p.pos = end
		return true
	case trimmed[0] == '#':
		p.pos = end
		return true
	case trimmed[0] == '%' && !p.inDoc:
		p.pos = end
		return true
	}

	if ok, _ := lineMarker(trimmed, "..."); ok {
		p.endDocument()
		p.pos = end
		return true
	}
	if ok, rest := lineMarker(trimmed, "---"); ok {
		p.endDocument()
		p.startDocument()
		if len(rest) == 0 {
			p.pos = end
			return true
		}
		p.pos = p.lineStart + 4
		return false
	}

	if !p.inDoc {
		p.startDocument()
	}

	if p.top().flags.has(fEXPL) {
		// Indentation is not significant inside flow collections; only
		// blank/comment lines needed handling, already done above.
		p.pos = p.lineStart
		return false
	}

	indent, tab := indentOf(p.src, p.lineStart, end)
	if tab {
		p.fail(tymlerr.ReasonCodeSyntax, "tab character used as block indentation")
	}
	bodyStart := p.lineStart + indent
	startsWithDash := bodyStart < end && p.src[bodyStart] == '-' && (bodyStart+1 >= end || p.src[bodyStart+1] == ' ')

	p.popToIndent(indent, startsWithDash)
	p.pos = p.lineStart + indent
	return false
}

// popToIndent pops frames whose content region a new line (at column
// indent, possibly starting with `- `) has dedented out of, honouring
// the indentless-sequence exception (spec.md §4.2.4 "pop any
// indentless sequence ... only when the new line clearly returns to
// the map").
func (p *Parser) popToIndent(indent int, startsWithDash bool) {
	for len(p.frames) > 1 {
		top := p.top()
		switch {
		case top.flags.has(fRUNK):
			if indent > top.indref || (startsWithDash && indent == top.indref) {
				return
			}
			p.finishFrame(top)
			p.popFrame()
		case top.indentless:
			if startsWithDash && indent == top.indref {
				return
			}
			p.finishFrame(top)
			p.popFrame()
		case indent < top.indref:
			p.finishFrame(top)
			p.popFrame()
		default:
			return
		}
	}
}

func (p *Parser) startDocument() {
	if p.inDoc {
		return
	}
	doc := p.t.AppendChild(p.streamRoot)
	p.t.ToDoc(doc)
	p.docNode = doc
	p.frames = []*frame{{flags: fRTOP | fRUNK, nodeID: doc, indref: -1}}
	p.inDoc = true
}

func (p *Parser) endDocument() {
	if !p.inDoc {
		return
	}
	for len(p.frames) > 0 {
		p.finishFrame(p.top())
		p.popFrame()
	}
	p.inDoc = false
}

// finishFrame is called when a frame is about to be popped (either by
// a dedent or at document end) and may still be carrying an unresolved
// RUNK value slot: a map entry or document root that never received a
// value becomes explicit null (spec.md §4.2.5).
func (p *Parser) finishFrame(f *frame) {
	if f.flags.has(fEXPL) {
		p.fail(tymlerr.ReasonCodeSyntax, "unterminated flow collection")
	}
	if !f.flags.has(fRUNK) {
		return
	}
	typ := p.t.Type(f.nodeID)
	if typ.IsContainer() || typ.IsVal() {
		return
	}
	switch {
	case typ.HasKey():
		p.t.ToKeyVal(f.nodeID, p.t.Key(f.nodeID).Scalar, nil)
	case f.flags.has(fRTOP):
		p.t.ToDocVal(f.nodeID, nil)
	default:
		p.t.ToVal(f.nodeID, nil)
	}
}
