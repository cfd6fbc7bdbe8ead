package tree

import "github.com/google/uuid"

// collectAnchorNames walks the subtree rooted at id, recording every
// declared anchor name (key-side or val-side) into seen. Used before a
// cross-tree merge to know which names in the destination tree a
// duplicated anchor must not collide with.
func (t *Tree) collectAnchorNames(id NodeID, seen map[string]bool) {
	typ := t.Type(id)
	if typ.IsKeyAnchor() {
		seen[t.Key(id).Anchor.String()] = true
	}
	if typ.IsValAnchor() {
		seen[t.Val(id).Anchor.String()] = true
	}
	for c := t.FirstChild(id); c != NoneID; c = t.NextSibling(c) {
		t.collectAnchorNames(c, seen)
	}
}

// duplicateUnique is Duplicate with one addition: any anchor carried
// over from srcTree whose name is already in seen is renamed with a
// short UUID suffix (and the rename recorded into seen), so alias
// resolution in the destination tree can't accidentally bind an alias
// to the wrong anchor after the merge. seen is mutated as anchors are
// copied, so later duplicates in the same call also dedup against
// earlier ones.
func (t *Tree) duplicateUnique(srcTree *Tree, srcNode, dstParent, after NodeID, seen map[string]bool) NodeID {
	id := t.Duplicate(srcTree, srcNode, dstParent, after)
	if id == NoneID {
		return NoneID
	}
	t.renameCollidingAnchors(id, seen)
	return id
}

func (t *Tree) renameCollidingAnchors(id NodeID, seen map[string]bool) {
	typ := t.Type(id)
	if typ.IsKeyAnchor() {
		t.dedupAnchor(id, seen, true)
	}
	if typ.IsValAnchor() {
		t.dedupAnchor(id, seen, false)
	}
	for c := t.FirstChild(id); c != NoneID; c = t.NextSibling(c) {
		t.renameCollidingAnchors(c, seen)
	}
}

func (t *Tree) dedupAnchor(id NodeID, seen map[string]bool, keySide bool) {
	name := t.Key(id).Anchor.String()
	if !keySide {
		name = t.Val(id).Anchor.String()
	}
	if seen[name] {
		name = name + "-" + uuid.NewString()[:8]
		anchor := t.CopyToArena([]byte(name))
		if keySide {
			t.SetKeyAnchor(id, anchor)
		} else {
			t.SetValAnchor(id, anchor)
		}
	}
	seen[name] = true
}

// MoveCrossTree moves node from srcTree into t, under newParent after
// `after`. Because the two trees do not share an arena, this
// duplicates the subtree (copying bytes via CopyToArena) and then
// removes the original (spec.md §4.1 "cross-tree move duplicates then
// removes from source"). Anchors carried over from srcTree are
// renamed on collision with an anchor already declared anywhere in t,
// since the two trees were parsed independently and may reuse the
// same anchor name for unrelated content.
func (t *Tree) MoveCrossTree(srcTree *Tree, node, newParent, after NodeID) NodeID {
	seen := map[string]bool{}
	t.collectAnchorNames(t.Root(), seen)
	dst := t.duplicateUnique(srcTree, node, newParent, after, seen)
	srcTree.Remove(node)
	return dst
}
