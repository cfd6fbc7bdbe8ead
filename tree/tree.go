package tree

import (
	"errors"

	"github.com/tymlgo/tyml/tymlerr"
)

const defaultCapacity = 16

// Tree owns a node pool and a string arena. A Tree is not safe for
// concurrent mutation; concurrent readers are safe as long as no
// mutation triggers pool/arena growth (spec.md §5).
type Tree struct {
	nodes []NodeData

	freeHead NodeID
	freeTail NodeID

	arena    []byte
	arenaLen int

	handler tymlerr.Handler
}

// Option configures a new Tree.
type Option func(*Tree)

// WithHandler installs a custom error/abort handler (spec.md §6.4).
// When omitted, tymlerr.PanicHandler is used.
func WithHandler(h tymlerr.Handler) Option {
	return func(t *Tree) { t.handler = h }
}

// New constructs an empty Tree. The node pool is reserved at
// defaultCapacity slots and the root node (index 0) is claimed here,
// inside New, not on first use; only the string arena starts at zero
// capacity.
func New(opts ...Option) *Tree {
	t := &Tree{
		freeHead: NoneID,
		freeTail: NoneID,
		handler:  tymlerr.PanicHandler{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.claimRoot()
	return t
}

func (t *Tree) claimRoot() {
	if len(t.nodes) == 0 {
		t.reserve(defaultCapacity)
	}
	if t.nodes[0].Parent == NoneID && t.freeHead == 0 {
		// root is node 0; pull it off the free list explicitly.
		t.unlinkFree(0)
	}
}

// Root returns the NodeID of the tree's root node, always 0.
func (t *Tree) Root() NodeID { return 0 }

func (t *Tree) fail(reason tymlerr.ReasonCode, err error) {
	t.handler.Handle(tymlerr.New(reason, err, nil))
}

// Len returns the number of live (non-free) node slots.
func (t *Tree) Len() int {
	return len(t.nodes) - t.freeCount()
}

func (t *Tree) freeCount() int {
	n := 0
	for id := t.freeHead; id != NoneID; id = t.nodes[id].NextSibling {
		n++
	}
	return n
}

// Capacity returns the current node pool capacity.
func (t *Tree) Capacity() int { return len(t.nodes) }

// Reserve grows the node pool so it has at least cap slots, per
// spec.md §4.1 "reserve(cap)". The pool may move, but NodeIDs remain
// valid because they are positions, not pointers.
func (t *Tree) Reserve(cap int) {
	t.reserve(cap)
}

func (t *Tree) reserve(cap int) {
	if cap <= len(t.nodes) {
		return
	}
	old := len(t.nodes)
	grown := make([]NodeData, cap)
	copy(grown, t.nodes)
	for i := old; i < cap; i++ {
		grown[i] = emptyNodeData()
	}
	t.nodes = grown

	// Thread the newly created slots onto the free list tail.
	for i := old; i < cap; i++ {
		t.linkFreeTail(NodeID(i))
	}
}

func (t *Tree) linkFreeTail(id NodeID) {
	t.nodes[id].PrevSibling = t.freeTail
	t.nodes[id].NextSibling = NoneID
	if t.freeTail != NoneID {
		t.nodes[t.freeTail].NextSibling = id
	} else {
		t.freeHead = id
	}
	t.freeTail = id
}

func (t *Tree) unlinkFree(id NodeID) {
	n := t.nodes[id]
	if n.PrevSibling != NoneID {
		t.nodes[n.PrevSibling].NextSibling = n.NextSibling
	} else if t.freeHead == id {
		t.freeHead = n.NextSibling
	}
	if n.NextSibling != NoneID {
		t.nodes[n.NextSibling].PrevSibling = n.PrevSibling
	} else if t.freeTail == id {
		t.freeTail = n.PrevSibling
	}
	t.nodes[id] = emptyNodeData()
}

// claimFree pops a slot off the free list, growing the pool
// geometrically if none are available.
func (t *Tree) claimFree() NodeID {
	if t.freeHead == NoneID {
		cap := len(t.nodes) * 2
		if cap == 0 {
			cap = defaultCapacity
		}
		t.reserve(cap)
	}
	if t.freeHead == NoneID {
		t.fail(tymlerr.ReasonCodeOutOfMemory, errors.New("node pool exhausted"))
		return NoneID
	}
	id := t.freeHead
	t.unlinkFree(id)
	return id
}

// --- accessors ---

func (t *Tree) node(id NodeID) *NodeData {
	if id == NoneID || int(id) >= len(t.nodes) {
		t.fail(tymlerr.ReasonCodeContractViolation, errors.New("invalid node id"))
		return nil
	}
	return &t.nodes[id]
}

// Type returns the type flags of the given node.
func (t *Tree) Type(id NodeID) TypeFlags { return t.node(id).Type }

// Key returns the key-side scalar triple of the given node.
func (t *Tree) Key(id NodeID) ScalarSide { return t.node(id).Key }

// Val returns the val-side scalar triple of the given node.
func (t *Tree) Val(id NodeID) ScalarSide { return t.node(id).Val }

// Parent returns the parent of id, or NoneID for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.node(id).Parent }

// FirstChild returns the first child of id, or NoneID if it has none.
func (t *Tree) FirstChild(id NodeID) NodeID { return t.node(id).FirstChild }

// LastChild returns the last child of id, or NoneID if it has none.
func (t *Tree) LastChild(id NodeID) NodeID { return t.node(id).LastChild }

// NextSibling returns the next sibling of id, or NoneID if it is the
// last child of its parent.
func (t *Tree) NextSibling(id NodeID) NodeID { return t.node(id).NextSibling }

// PrevSibling returns the previous sibling of id, or NoneID if it is
// the first child of its parent.
func (t *Tree) PrevSibling(id NodeID) NodeID { return t.node(id).PrevSibling }

// IsRoot reports whether id is the tree's root node.
func (t *Tree) IsRoot(id NodeID) bool { return t.node(id).Parent == NoneID }

// HasChildren reports whether id has at least one child.
func (t *Tree) HasChildren(id NodeID) bool { return t.node(id).FirstChild != NoneID }

// ChildCount returns the number of direct children of id.
func (t *Tree) ChildCount(id NodeID) int {
	n := 0
	for c := t.FirstChild(id); c != NoneID; c = t.NextSibling(c) {
		n++
	}
	return n
}

// ChildAt returns the index-th direct child of id, or NoneID if out of
// range.
func (t *Tree) ChildAt(id NodeID, index int) NodeID {
	i := 0
	for c := t.FirstChild(id); c != NoneID; c = t.NextSibling(c) {
		if i == index {
			return c
		}
		i++
	}
	return NoneID
}

// ChildByKey returns the direct child of id (which must be a Map) whose
// key scalar equals key, or NoneID if no such child exists. When
// multiple children share a key, the first in document order wins,
// matching a real map's last-insert semantics being resolved earlier by
// DuplicateChildrenNoRep.
func (t *Tree) ChildByKey(id NodeID, key string) NodeID {
	for c := t.FirstChild(id); c != NoneID; c = t.NextSibling(c) {
		if t.Key(c).Scalar.String() == key {
			return c
		}
	}
	return NoneID
}
