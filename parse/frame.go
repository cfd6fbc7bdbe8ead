package parse

import "github.com/tymlgo/tyml/tree"

// flags mirrors spec.md §4.2's frame bitset: RTOP/RUNK/RMAP/RSEQ/EXPL
// describe the frame's context, RSEQIMAP the implicit-map-inside-a-
// flow-sequence case named in the glossary. RKEY/RVAL/RNXT/CPLX/SSCL/
// RSET/NDOC are not tracked as frame flags: each map entry's key and
// value are placed synchronously by the caller that recognises them,
// so the frame only needs to remember what kind of container it is
// and where its content starts.
type flags uint16

const (
	fRTOP flags = 1 << iota
	fRUNK
	fRMAP
	fRSEQ
	fEXPL
	fRSEQIMAP
)

func (f flags) has(b flags) bool { return f&b == b }

// frame is one level of the parser's pushdown stack (spec.md §4.2).
// indref is the reference indentation column used to decide whether a
// later line continues this frame's content, starts a nested value, or
// dedents out of it (spec.md §4.2.4). indentless marks a block
// sequence whose items sit at the same column as the enclosing map's
// keys (spec.md glossary "indentless sequence").
type frame struct {
	flags      flags
	nodeID     tree.NodeID
	indref     int
	indentless bool
}
