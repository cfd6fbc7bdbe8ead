// Package resolve implements the Reference Resolver (spec.md §4.4): an
// explicit, optional post-parse pass that expands anchor/alias
// references and merge keys in place, then strips the anchor/ref
// metadata those expansions consumed.
package resolve

import (
	"fmt"

	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

// Option configures a Resolve call.
type Option func(*resolver)

// WithHandler installs a custom error/abort handler for resolution
// failures (e.g. an alias with no preceding anchor of that name). When
// omitted, tymlerr.PanicHandler is used.
func WithHandler(h tymlerr.Handler) Option {
	return func(r *resolver) { r.handler = h }
}

const mergeKeyName = "<<"

type aliasEntry struct {
	node         tree.NodeID
	name         string
	keySide      bool
	isMergeKey   bool
	mergeOwner   tree.NodeID
	target       tree.NodeID
	targetFound  bool
}

type resolver struct {
	t       *tree.Tree
	handler tymlerr.Handler
	aliases []aliasEntry
}

// Resolve expands every anchor/alias/merge-key in t starting from root,
// per spec.md §4.4, then clears all anchor and ref flags and spans.
func Resolve(t *tree.Tree, root tree.NodeID, opts ...Option) {
	r := &resolver{t: t, handler: tymlerr.PanicHandler{}}
	for _, opt := range opts {
		opt(r)
	}

	anchorMap := map[string]tree.NodeID{}
	r.collect(root, anchorMap)

	mergeOwners := map[tree.NodeID]bool{}
	for _, a := range r.aliases {
		if !a.targetFound {
			r.fail(tymlerr.ReasonCodeAliasNotFound, fmt.Errorf("alias %q has no preceding anchor", a.name))
			continue
		}
		r.apply(a)
		if a.isMergeKey {
			mergeOwners[a.mergeOwner] = true
		}
	}

	// A merge-key node (`<<: *name` or `<<: [*a, *b]`) is removed once
	// all of its target aliases have been expanded into its parent.
	for owner := range mergeOwners {
		t.Remove(owner)
	}

	r.clearMetadata(root)
}

func (r *resolver) fail(reason tymlerr.ReasonCode, err error) {
	r.handler.Handle(tymlerr.New(reason, err, nil))
}

// collect walks the tree depth-first, recording every anchor
// declaration into anchorMap (so later lookups see the "most recent
// preceding anchor" per spec.md §4.4 step 1/2) and every alias use into
// r.aliases, resolved against anchorMap's state at the moment the alias
// is visited.
func (r *resolver) collect(id tree.NodeID, anchorMap map[string]tree.NodeID) {
	t := r.t
	typ := t.Type(id)

	if typ.IsKeyAnchor() {
		anchorMap[t.Key(id).Anchor.String()] = id
	}
	if typ.IsValAnchor() {
		anchorMap[t.Val(id).Anchor.String()] = id
	}

	isMergeKeyNode := typ.HasKey() && t.Key(id).Scalar.String() == mergeKeyName

	if typ.IsKeyRef() {
		name := t.Key(id).Scalar.String()
		target, ok := anchorMap[name]
		r.aliases = append(r.aliases, aliasEntry{
			node: id, name: name, keySide: true,
			target: target, targetFound: ok,
		})
	}

	if typ.IsValRef() {
		name := t.Val(id).Scalar.String()
		target, ok := anchorMap[name]
		r.aliases = append(r.aliases, aliasEntry{
			node: id, name: name,
			isMergeKey: isMergeKeyNode, mergeOwner: id,
			target: target, targetFound: ok,
		})
	} else if isMergeKeyNode && typ.IsSeq() {
		for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
			if !t.Type(c).IsValRef() {
				continue
			}
			name := t.Val(c).Scalar.String()
			target, ok := anchorMap[name]
			r.aliases = append(r.aliases, aliasEntry{
				node: c, name: name,
				isMergeKey: true, mergeOwner: id,
				target: target, targetFound: ok,
			})
		}
	}

	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		r.collect(c, anchorMap)
	}
}

// apply expands a single resolved alias entry: a normal alias is
// replaced by a deep copy of the target's contents at its own
// position; a merge-key alias duplicates the target's children into
// the merge owner's parent, before the merge owner's position, using
// the no-repetition rule (spec.md §4.4 step 3, §4.1
// DuplicateChildrenNoRep).
func (r *resolver) apply(a aliasEntry) {
	t := r.t
	if a.isMergeKey {
		owner := a.mergeOwner
		parent := t.Parent(owner)
		insertAfter := t.PrevSibling(owner)
		t.DuplicateChildrenNoRep(t, a.target, parent, insertAfter)
		return
	}

	if a.keySide {
		// A key-side alias (`*name: value`) replaces only the key
		// scalar with the target's val scalar text; the entry's own
		// value and children are untouched.
		t.SetKeyScalar(a.node, r.copyScalar(t, a.target))
		return
	}

	// Normal val-side alias: replace this node's contents (type, val,
	// children) with a deep copy of the target's.
	t.RemoveChildren(a.node)
	t.Merge(t, a.target, a.node)
}

// copyScalar renders the target node's val scalar into the arena, used
// when a key-side alias (an alias used as a map key) needs its
// replacement text.
func (r *resolver) copyScalar(t *tree.Tree, target tree.NodeID) tree.Span {
	return t.CopyToArena([]byte(t.Val(target).Scalar.String()))
}

func (r *resolver) clearMetadata(id tree.NodeID) {
	t := r.t
	t.ClearRefAndAnchor(id)
	for c := t.FirstChild(id); c != tree.NoneID; c = t.NextSibling(c) {
		r.clearMetadata(c)
	}
}
