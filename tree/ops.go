package tree

import (
	"errors"

	"github.com/tymlgo/tyml/tymlerr"
)

// --- type transitions (spec.md §3.4, §4.1) ---

// assertNoChildren fails if id currently has children; leafifying a
// node with children is a structural violation (spec.md §4.1).
func (t *Tree) assertNoChildren(id NodeID) bool {
	if t.HasChildren(id) {
		t.fail(tymlerr.ReasonCodeInvalidTransition, errors.New("cannot change type of a node with children"))
		return false
	}
	return true
}

// ToVal turns id into a plain scalar value node.
func (t *Tree) ToVal(id NodeID, val Span) {
	if !t.assertNoChildren(id) {
		return
	}
	n := t.node(id)
	n.Type = (n.Type &^ (Map | Seq)) | Val
	n.Val.Scalar = val
}

// ToMap turns id into a mapping node.
func (t *Tree) ToMap(id NodeID) {
	n := t.node(id)
	n.Type = (n.Type &^ (Val | Seq)) | Map
}

// ToSeq turns id into a sequence node.
func (t *Tree) ToSeq(id NodeID) {
	n := t.node(id)
	n.Type = (n.Type &^ (Val | Map)) | Seq
}

// ToKeyVal turns id into a mapping entry with both a key and a val
// scalar. id's parent must be a Map.
func (t *Tree) ToKeyVal(id NodeID, key, val Span) {
	if !t.assertNoChildren(id) {
		return
	}
	n := t.node(id)
	n.Type = (n.Type &^ (Map | Seq)) | KeyVal
	n.Key.Scalar = key
	n.Val.Scalar = val
}

// ToKeyMap turns id into a mapping entry whose value is itself a map.
func (t *Tree) ToKeyMap(id NodeID, key Span) {
	n := t.node(id)
	n.Type = (n.Type &^ (Val | Seq)) | KeyMap
	n.Key.Scalar = key
}

// ToKeySeq turns id into a mapping entry whose value is itself a
// sequence.
func (t *Tree) ToKeySeq(id NodeID, key Span) {
	n := t.node(id)
	n.Type = (n.Type &^ (Val | Map)) | KeySeq
	n.Key.Scalar = key
}

// ToDoc turns id into a bare document root (neither map nor seq yet).
func (t *Tree) ToDoc(id NodeID) {
	n := t.node(id)
	n.Type |= Doc
}

// ToDocMap turns id into a document root holding a mapping.
func (t *Tree) ToDocMap(id NodeID) {
	n := t.node(id)
	n.Type = (n.Type &^ (Val | Seq)) | DocMap
}

// ToDocSeq turns id into a document root holding a sequence.
func (t *Tree) ToDocSeq(id NodeID) {
	n := t.node(id)
	n.Type = (n.Type &^ (Val | Map)) | DocSeq
}

// ToDocVal turns id into a document root holding a bare scalar value.
func (t *Tree) ToDocVal(id NodeID, val Span) {
	if !t.assertNoChildren(id) {
		return
	}
	n := t.node(id)
	n.Type = (n.Type &^ (Map | Seq)) | DocVal
	n.Val.Scalar = val
}

// ToStream turns id into a stream root (implies Seq; children are
// documents).
func (t *Tree) ToStream(id NodeID) {
	n := t.node(id)
	n.Type = (n.Type &^ Map) | Stream | Seq
}

// SetKeyTag / SetValTag / SetKeyAnchor / SetValAnchor / SetKeyRef /
// SetValRef attach the one-shot tag/anchor/ref metadata the parser
// collects ahead of the scalar they apply to (spec.md §4.2 "key_tag,
// val_tag, key_anchor, val_anchor").

func (t *Tree) SetKeyTag(id NodeID, tag Span) {
	n := t.node(id)
	n.Type |= KeyTag
	n.Key.Tag = tag
}

func (t *Tree) SetValTag(id NodeID, tag Span) {
	n := t.node(id)
	n.Type |= ValTag
	n.Val.Tag = tag
}

func (t *Tree) SetKeyAnchor(id NodeID, anchor Span) {
	n := t.node(id)
	n.Type = (n.Type &^ KeyRef) | KeyAnch
	n.Key.Anchor = anchor
}

func (t *Tree) SetValAnchor(id NodeID, anchor Span) {
	n := t.node(id)
	n.Type = (n.Type &^ ValRef) | ValAnch
	n.Val.Anchor = anchor
}

func (t *Tree) SetKeyRef(id NodeID, aliasName Span) {
	n := t.node(id)
	n.Type = (n.Type &^ KeyAnch) | KeyRef
	n.Key.Scalar = aliasName
}

func (t *Tree) SetValRef(id NodeID, aliasName Span) {
	n := t.node(id)
	n.Type = (n.Type &^ ValAnch) | ValRef
	n.Val.Scalar = aliasName
}

// SetKeyScalar overwrites id's key scalar text in place, leaving its
// type, val and children untouched. Used by the reference resolver to
// replace a key-side alias (`*name: value`) with the copied text of
// its target (spec.md §4.4 step 3).
func (t *Tree) SetKeyScalar(id NodeID, scalar Span) {
	n := t.node(id)
	n.Type = (n.Type &^ KeyRef) | Key
	n.Key.Scalar = scalar
}

// ClearRefAndAnchor strips every ref/anchor flag and the associated
// spans from id, used by the resolver once aliases are expanded
// (spec.md §4.4 step 4).
func (t *Tree) ClearRefAndAnchor(id NodeID) {
	n := t.node(id)
	n.Type &^= KeyRef | ValRef | KeyAnch | ValAnch
	n.Key.Anchor = nil
	n.Val.Anchor = nil
}

// --- structural mutation ---

// InsertChild claims a free slot, sets its parent to parent, and
// splices it into parent's child list immediately after `after` (or at
// the head if after is NoneID). Returns the new node's id.
func (t *Tree) InsertChild(parent, after NodeID) NodeID {
	if after != NoneID && t.node(after).Parent != parent {
		t.fail(tymlerr.ReasonCodeContractViolation, errors.New("after is not a child of parent"))
		return NoneID
	}
	id := t.claimFree()
	if id == NoneID {
		return NoneID
	}
	t.nodes[id] = emptyNodeData()
	t.nodes[id].Parent = parent

	p := t.node(parent)
	var nextSib NodeID
	if after == NoneID {
		nextSib = p.FirstChild
	} else {
		nextSib = t.node(after).NextSibling
	}

	t.nodes[id].PrevSibling = after
	t.nodes[id].NextSibling = nextSib

	if after != NoneID {
		t.nodes[after].NextSibling = id
	} else {
		p.FirstChild = id
	}
	if nextSib != NoneID {
		t.nodes[nextSib].PrevSibling = id
	} else {
		p.LastChild = id
	}

	return id
}

// AppendChild inserts a new child at the end of parent's child list.
func (t *Tree) AppendChild(parent NodeID) NodeID {
	return t.InsertChild(parent, t.LastChild(parent))
}

// PrependChild inserts a new child at the start of parent's child
// list.
func (t *Tree) PrependChild(parent NodeID) NodeID {
	return t.InsertChild(parent, NoneID)
}

// InsertSibling inserts a new sibling of node immediately after after
// (or at the head of node's parent's child list if after is NoneID).
func (t *Tree) InsertSibling(node, after NodeID) NodeID {
	return t.InsertChild(t.Parent(node), after)
}

// detach removes id from its parent's child list and from its sibling
// chain, without touching its children or returning it to the free
// list.
func (t *Tree) detach(id NodeID) {
	n := t.node(id)
	parent := n.Parent
	if parent == NoneID {
		return
	}
	p := t.node(parent)
	if n.PrevSibling != NoneID {
		t.nodes[n.PrevSibling].NextSibling = n.NextSibling
	} else {
		p.FirstChild = n.NextSibling
	}
	if n.NextSibling != NoneID {
		t.nodes[n.NextSibling].PrevSibling = n.PrevSibling
	} else {
		p.LastChild = n.PrevSibling
	}
	n.PrevSibling = NoneID
	n.NextSibling = NoneID
}

// Remove recursively releases id and its subtree, returning the freed
// slots to the free list (spec.md §3.4, §4.1).
func (t *Tree) Remove(id NodeID) {
	if id == t.Root() {
		t.fail(tymlerr.ReasonCodeContractViolation, errors.New("cannot remove the root node"))
		return
	}
	t.RemoveChildren(id)
	t.detach(id)
	t.linkFreeTail(id)
}

// RemoveChildren releases id's subtree but keeps id itself.
func (t *Tree) RemoveChildren(id NodeID) {
	child := t.FirstChild(id)
	for child != NoneID {
		next := t.NextSibling(child)
		t.RemoveChildren(child)
		t.nodes[child].PrevSibling = NoneID
		t.nodes[child].NextSibling = NoneID
		t.linkFreeTail(child)
		child = next
	}
	n := t.node(id)
	n.FirstChild = NoneID
	n.LastChild = NoneID
}

// Move relocates node to become a sibling positioned after `after`,
// keeping its current parent.
func (t *Tree) Move(node, after NodeID) {
	t.MoveToParent(node, t.Parent(node), after)
}

// MoveToParent detaches node and re-splices it under newParent,
// immediately after `after`.
func (t *Tree) MoveToParent(node, newParent, after NodeID) {
	t.detach(node)
	t.nodes[node].Parent = newParent
	t.spliceAfter(node, newParent, after)
}

func (t *Tree) spliceAfter(id, parent, after NodeID) {
	p := t.node(parent)
	var nextSib NodeID
	if after == NoneID {
		nextSib = p.FirstChild
	} else {
		nextSib = t.node(after).NextSibling
	}
	t.nodes[id].PrevSibling = after
	t.nodes[id].NextSibling = nextSib
	if after != NoneID {
		t.nodes[after].NextSibling = id
	} else {
		p.FirstChild = id
	}
	if nextSib != NoneID {
		t.nodes[nextSib].PrevSibling = id
	} else {
		p.LastChild = id
	}
}

// MoveCrossTree is defined in crossmerge.go (it needs anchor-collision
// handling beyond plain Duplicate+Remove).

func (t *Tree) dupSpan(srcTree *Tree, s Span) Span {
	if srcTree == t || s == nil {
		return s
	}
	return t.CopyToArena(s)
}

// Duplicate clones the subtree rooted at srcNode (in srcTree, which may
// be t itself) as a new child of dstParent, spliced after `after`.
// Scalar bytes are copied into t's arena when srcTree != t.
func (t *Tree) Duplicate(srcTree *Tree, srcNode, dstParent, after NodeID) NodeID {
	src := srcTree.node(srcNode)
	id := t.InsertChild(dstParent, after)
	if id == NoneID {
		return NoneID
	}
	dst := t.node(id)
	dst.Type = src.Type
	dst.Key = ScalarSide{
		Tag:    t.dupSpan(srcTree, src.Key.Tag),
		Scalar: t.dupSpan(srcTree, src.Key.Scalar),
		Anchor: t.dupSpan(srcTree, src.Key.Anchor),
	}
	dst.Val = ScalarSide{
		Tag:    t.dupSpan(srcTree, src.Val.Tag),
		Scalar: t.dupSpan(srcTree, src.Val.Scalar),
		Anchor: t.dupSpan(srcTree, src.Val.Anchor),
	}

	prev := NoneID
	for c := srcTree.FirstChild(srcNode); c != NoneID; c = srcTree.NextSibling(c) {
		prev = t.Duplicate(srcTree, c, id, prev)
	}
	return id
}

// DuplicateChildren clones every child of srcNode (in srcTree) as
// children of dstParent, spliced after `after`, preserving order.
func (t *Tree) DuplicateChildren(srcTree *Tree, srcNode, dstParent, after NodeID) {
	prev := after
	for c := srcTree.FirstChild(srcNode); c != NoneID; c = srcTree.NextSibling(c) {
		prev = t.Duplicate(srcTree, c, dstParent, prev)
	}
}

// DuplicateChildrenNoRep clones every child of srcNode into dstParent
// (which must be a Map) at the position after `after`, applying the
// "last sibling wins" no-repetition rule from spec.md §4.1: if a
// destination child with the same key already exists before the
// insertion point it is removed and the source child's copy is
// inserted at the insertion point; if it exists after the insertion
// point it is kept and moved up to the insertion point. This is what
// lets the reference resolver implement YAML merge-key semantics
// (spec.md §4.4).
func (t *Tree) DuplicateChildrenNoRep(srcTree *Tree, srcNode, dstParent, after NodeID) {
	prev := after
	for c := srcTree.FirstChild(srcNode); c != NoneID; c = srcTree.NextSibling(c) {
		key := srcTree.Key(c).Scalar.String()
		if existing := t.ChildByKey(dstParent, key); existing != NoneID {
			if t.precedes(dstParent, existing, prev) || existing == prev {
				// Existing destination key precedes (or is) the
				// insertion point: it is replaced by the source child.
				wasAfter := t.PrevSibling(existing)
				if prev == existing {
					prev = wasAfter
				}
				t.Remove(existing)
			} else {
				// Existing destination key follows the insertion
				// point: move it up to sit exactly at that point,
				// overwriting its scalar/children from nothing (the
				// local copy already present wins, so just relocate).
				t.Move(existing, prev)
				prev = existing
				continue
			}
		}
		prev = t.Duplicate(srcTree, c, dstParent, prev)
	}
}

// precedes reports whether sibling a comes strictly before sibling b in
// parent's child list (both must be direct children of parent, or
// NoneID).
func (t *Tree) precedes(parent, a, b NodeID) bool {
	if b == NoneID {
		// b == NoneID conventionally means "at the head", so nothing
		// precedes it.
		return false
	}
	for c := t.FirstChild(parent); c != NoneID; c = t.NextSibling(c) {
		if c == a {
			return true
		}
		if c == b {
			return false
		}
	}
	return false
}

// Reorder normalises pool positions so that a depth-first traversal
// visits nodes in increasing index order (spec.md §3.4, §4.1). It
// never changes document structure or scalar content, only slot
// positions — emit output is unaffected (spec.md §8 "reorder preserves
// semantics").
func (t *Tree) Reorder() {
	order := make([]NodeID, 0, len(t.nodes))
	var walk func(NodeID)
	walk = func(id NodeID) {
		order = append(order, id)
		for c := t.FirstChild(id); c != NoneID; c = t.NextSibling(c) {
			walk(c)
		}
	}
	walk(t.Root())
	for _, free := range t.freeList() {
		order = append(order, free)
	}

	newPos := make([]NodeID, len(t.nodes))
	for newIdx, oldID := range order {
		newPos[oldID] = NodeID(newIdx)
	}

	remap := func(id NodeID) NodeID {
		if id == NoneID {
			return NoneID
		}
		return newPos[id]
	}

	newNodes := make([]NodeData, len(t.nodes))
	for oldID, newID := range newPos {
		n := t.nodes[oldID]
		n.Parent = remap(n.Parent)
		n.FirstChild = remap(n.FirstChild)
		n.LastChild = remap(n.LastChild)
		n.PrevSibling = remap(n.PrevSibling)
		n.NextSibling = remap(n.NextSibling)
		newNodes[newID] = n
	}
	t.nodes = newNodes

	if t.freeHead != NoneID {
		t.freeHead = remap(t.freeHead)
	}
	if t.freeTail != NoneID {
		t.freeTail = remap(t.freeTail)
	}
}

func (t *Tree) freeList() []NodeID {
	var out []NodeID
	for id := t.freeHead; id != NoneID; id = t.nodes[id].NextSibling {
		out = append(out, id)
	}
	return out
}

// Merge combines src into t at dstNode (spec.md §3.4 "Merge"): scalars
// are overwritten, sequences get src's children appended, and maps get
// children merged by key, descending recursively on collisions.
func (t *Tree) Merge(src *Tree, srcNode, dstNode NodeID) {
	srcType := src.Type(srcNode)
	dstType := t.Type(dstNode)

	switch {
	case srcType.IsMap() && dstType.IsMap():
		for c := src.FirstChild(srcNode); c != NoneID; c = src.NextSibling(c) {
			key := src.Key(c).Scalar.String()
			if existing := t.ChildByKey(dstNode, key); existing != NoneID {
				if src.Type(c).IsContainer() && t.Type(existing).Type() == src.Type(c).Type() {
					t.Merge(src, c, existing)
					continue
				}
				t.Remove(existing)
			}
			t.Duplicate(src, c, dstNode, t.LastChild(dstNode))
		}
	case srcType.IsSeq() && dstType.IsSeq():
		for c := src.FirstChild(srcNode); c != NoneID; c = src.NextSibling(c) {
			t.Duplicate(src, c, dstNode, t.LastChild(dstNode))
		}
	default:
		// Scalar (or type mismatch): overwrite wholesale, keeping
		// dstNode's own key-side bits (Key/KeyTag/KeyAnch/KeyRef) and
		// Doc/Stream-ness, which belong to dstNode's position in its
		// own tree rather than to src's shape. ValAnch/ValRef never
		// carry over: a copy of an anchored or ref'd node is neither.
		t.RemoveChildren(dstNode)
		n := t.node(dstNode)
		const preserveFromDst = Key | KeyTag | KeyAnch | KeyRef | Doc | Stream
		const stripFromSrc = preserveFromDst | ValAnch | ValRef
		n.Type = (n.Type & preserveFromDst) | (srcType &^ stripFromSrc)
		n.Val = ScalarSide{
			Tag:    t.dupSpan(src, src.Val(srcNode).Tag),
			Scalar: t.dupSpan(src, src.Val(srcNode).Scalar),
		}
		for c := src.FirstChild(srcNode); c != NoneID; c = src.NextSibling(c) {
			t.Duplicate(src, c, dstNode, t.LastChild(dstNode))
		}
	}
}

// Type returns t with the ref, anchor and tag bits cleared, leaving the
// structural flags (helper for Merge's type-match check above).
func (t TypeFlags) Type() TypeFlags { return t &^ (KeyRef | ValRef | KeyAnch | ValAnch | KeyTag | ValTag) }
