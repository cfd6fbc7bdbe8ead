package parse

import (
	"fmt"
	"io"
	"strings"
)

// DumpFrames renders the parser's current frame stack to w, one frame
// per line, innermost last — a Go equivalent of ryml's parser_dbg.hpp
// debug dump, for ad hoc troubleshooting. The WithLogger tracing does
// not call it (it logs one frame per pop); it has no effect on parsing
// itself.
func (p *Parser) DumpFrames(w io.Writer) {
	for i, f := range p.frames {
		fmt.Fprintf(w, "%s#%d node=%d indref=%d indentless=%v flags=%s\n",
			strings.Repeat("  ", i), i, f.nodeID, f.indref, f.indentless, f.flags.String())
	}
}

func (f flags) String() string {
	var parts []string
	add := func(b flags, name string) {
		if f.has(b) {
			parts = append(parts, name)
		}
	}
	add(fRTOP, "RTOP")
	add(fRUNK, "RUNK")
	add(fRMAP, "RMAP")
	add(fRSEQ, "RSEQ")
	add(fEXPL, "EXPL")
	add(fRSEQIMAP, "RSEQIMAP")
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
