package parse

import (
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

func span(b []byte) tree.Span { return tree.Span(b) }

// step dispatches the next unit of work for the current top frame
// (spec.md §4.2.2's handle_map_impl/handle_seq_impl/handle_map_expl/
// handle_seq_expl/handle_unk, collapsed into frame-flag based
// branches rather than five separate methods, since block/flow and
// map/seq each share most of their logic through scanValueInto/
// scanMapKeyInto).
func (p *Parser) step() {
	if p.atCommentStart() {
		p.consumeComment()
		return
	}
	top := p.top()
	switch {
	case top.flags.has(fEXPL):
		p.handleFlowToken()
	case top.flags.has(fRSEQ):
		p.handleSeqBlockLine()
	case top.flags.has(fRMAP):
		p.handleMapBlockLine()
	default: // fRUNK (doc root, or a map entry's not-yet-typed value)
		p.handleUnkLine()
	}
}

// skipTrailingComment consumes a trailing `# ...` comment (if any) and
// leaves p.pos at the line's end either way, enforcing that nothing
// but a comment may follow a completed block-style value.
func (p *Parser) skipTrailingComment() {
	p.skipInlineSpace()
	if p.atCommentStart() {
		p.consumeComment()
	}
}

// handleUnkLine resolves an unresolved value slot (the document root,
// or a map entry whose value was deferred to a later line) from the
// token at the start of this line: `- ` starts a sequence (possibly
// indentless, when indent equals the slot's own reference column and
// the slot belongs to a map entry), anything else is parsed as a
// single scalar/flow/tag/anchor/alias value via scanValueInto.
func (p *Parser) handleUnkLine() {
	f := p.top()
	indent := p.pos - p.lineStart
	end := p.curLineEnd()
	isDash := p.peek() == '-' && (p.pos+1 >= end || p.src[p.pos+1] == ' ')

	if isDash {
		p.t.ToSeq(f.nodeID)
		f.indentless = !f.flags.has(fRTOP) && indent == f.indref
		f.flags = (f.flags &^ fRUNK) | fRSEQ
		f.indref = indent
		p.handleSeqBlockLine()
		return
	}

	valIndref := f.indref
	if f.flags.has(fRTOP) {
		valIndref = indent
	}
	nodeID := f.nodeID
	origFlags := f.flags
	origIndref := f.indref
	// Pop this RUNK slot before resolving it: scanValueInto may itself
	// push one or more new frames (a flow/block container, possibly
	// with its own nested content already opened), and those must land
	// directly on top of the stack as it stands now, not underneath a
	// stale placeholder for the slot they are replacing.
	p.popFrame()
	outcome := p.scanValueInto(nodeID, valIndref, false)
	switch outcome {
	case valueNone:
		// Nothing materialised after all; restore the slot.
		p.push(&frame{flags: origFlags, nodeID: nodeID, indref: origIndref})
	case valueContainerOpen:
		// scanValueInto already pushed the container's own frame.
	default:
		p.skipTrailingComment()
	}
}
