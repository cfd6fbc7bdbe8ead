// Package tree implements the Arena Tree (spec.md §3, §4.1): an
// index-addressed node pool with a side string arena. Node identities
// are positions in a slice rather than pointers, so they survive pool
// and arena growth (spec.md §3.3, §8 "index stability").
package tree

// NodeID identifies a node by its position in a Tree's node pool.
// NoneID is the sentinel meaning "no such node" (spec.md §3.3).
type NodeID int32

// NoneID is the sentinel NodeID value meaning "no such node".
const NoneID NodeID = -1

// Valid reports whether id refers to a real slot (as opposed to NoneID).
func (id NodeID) Valid() bool {
	return id != NoneID
}

// TypeFlags is the node type bitset described in spec.md §3.1. The bits
// are independent and combinable.
type TypeFlags uint16

const (
	// Val indicates the node has a value scalar.
	Val TypeFlags = 1 << iota
	// Key indicates the node has a key scalar (it is a mapping child).
	Key
	// Map indicates the node is a mapping.
	Map
	// Seq indicates the node is a sequence.
	Seq
	// Doc indicates the node is a document root within a stream.
	Doc
	// Stream indicates the node is a stream (implies Seq); children are
	// documents.
	Stream
	// KeyRef indicates the key scalar is an alias reference to an
	// anchor.
	KeyRef
	// ValRef indicates the val scalar is an alias reference to an
	// anchor.
	ValRef
	// KeyAnch indicates the key scalar declares an anchor.
	KeyAnch
	// ValAnch indicates the val scalar declares an anchor.
	ValAnch
	// KeyTag indicates the key scalar carries a tag.
	KeyTag
	// ValTag indicates the val scalar carries a tag.
	ValTag
)

// Derived combinations named by spec.md §3.1.
const (
	KeyVal = Key | Val
	KeyMap = Key | Map
	KeySeq = Key | Seq
	DocMap = Doc | Map
	DocSeq = Doc | Seq
	DocVal = Doc | Val
)

func (t TypeFlags) has(bits TypeFlags) bool { return t&bits == bits }

// IsVal reports whether the node has a value scalar (and is not itself
// a container).
func (t TypeFlags) IsVal() bool { return t.has(Val) && !t.has(Map) && !t.has(Seq) }

// IsMap reports whether the node is a mapping.
func (t TypeFlags) IsMap() bool { return t.has(Map) }

// IsSeq reports whether the node is a sequence.
func (t TypeFlags) IsSeq() bool { return t.has(Seq) }

// IsContainer reports whether the node is a map or a sequence.
func (t TypeFlags) IsContainer() bool { return t.has(Map) || t.has(Seq) }

// IsDoc reports whether the node is a document root within a stream.
func (t TypeFlags) IsDoc() bool { return t.has(Doc) }

// IsStream reports whether the node is a stream.
func (t TypeFlags) IsStream() bool { return t.has(Stream) }

// HasKey reports whether the node has a key side (its parent is a Map).
func (t TypeFlags) HasKey() bool { return t.has(Key) }

// HasVal reports whether the node has a val scalar set (regardless of
// whether it is also a container).
func (t TypeFlags) HasVal() bool { return t.has(Val) }

// IsKeyRef / IsValRef / IsKeyAnchor / IsValAnchor / IsKeyTagged /
// IsValTagged report the corresponding alias/anchor/tag bits.
func (t TypeFlags) IsKeyRef() bool    { return t.has(KeyRef) }
func (t TypeFlags) IsValRef() bool    { return t.has(ValRef) }
func (t TypeFlags) IsKeyAnchor() bool { return t.has(KeyAnch) }
func (t TypeFlags) IsValAnchor() bool { return t.has(ValAnch) }
func (t TypeFlags) IsKeyTagged() bool { return t.has(KeyTag) }
func (t TypeFlags) IsValTagged() bool { return t.has(ValTag) }

// Span is a byte range either into the source buffer or into a Tree's
// string arena. A nil Span denotes an absent value (YAML `~`); a
// non-nil, zero-length Span denotes the empty string (YAML `''`) —
// spec.md §3.2.
type Span []byte

// IsNull reports whether the span is the fully-null (`~`) span.
func (s Span) IsNull() bool { return s == nil }

// String renders the span as a Go string (the empty string for both the
// null and empty-but-present spans).
func (s Span) String() string { return string(s) }

// ScalarSide holds one side (key or val) of a node: its tag, scalar
// text and anchor name, each a Span (spec.md §3.2).
type ScalarSide struct {
	Tag    Span
	Scalar Span
	Anchor Span
}

// NodeData is one entry in the node pool (spec.md §3.3). Indices are
// positions, not pointers, so relocating the pool never invalidates a
// NodeID.
type NodeData struct {
	Type TypeFlags
	Key  ScalarSide
	Val  ScalarSide

	Parent      NodeID
	FirstChild  NodeID
	LastChild   NodeID
	PrevSibling NodeID
	NextSibling NodeID
}

func emptyNodeData() NodeData {
	return NodeData{
		Parent:      NoneID,
		FirstChild:  NoneID,
		LastChild:   NoneID,
		PrevSibling: NoneID,
		NextSibling: NoneID,
	}
}
