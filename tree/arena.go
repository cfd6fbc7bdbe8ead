package tree

import (
	"strconv"
	"unsafe"
)

const defaultArenaCapacity = 64

// ArenaCapacity returns the current string arena capacity in bytes.
func (t *Tree) ArenaCapacity() int { return len(t.arena) }

// ArenaLen returns the number of bytes currently used in the string
// arena.
func (t *Tree) ArenaLen() int { return t.arenaLen }

// ReserveArena grows the string arena so it has at least cap bytes of
// capacity (spec.md §4.1 "reserve_arena(cap)"). If the arena is
// relocated, every node's key/val tag/scalar/anchor span that points
// into the old arena is rebased onto the new one (spec.md §3.3, §8
// "arena rebase").
func (t *Tree) ReserveArena(cap int) {
	if cap <= len(t.arena) {
		return
	}
	old := t.arena
	grown := make([]byte, cap)
	copy(grown, old)
	t.arena = grown
	if len(old) == 0 {
		return
	}
	t.rebaseArenaSpans(old, t.arena)
}

func (t *Tree) rebaseArenaSpans(old, new []byte) {
	rebase := func(s Span) Span {
		return rebaseSpan(s, old, new)
	}
	for i := range t.nodes {
		t.nodes[i].Key.Tag = rebase(t.nodes[i].Key.Tag)
		t.nodes[i].Key.Scalar = rebase(t.nodes[i].Key.Scalar)
		t.nodes[i].Key.Anchor = rebase(t.nodes[i].Key.Anchor)
		t.nodes[i].Val.Tag = rebase(t.nodes[i].Val.Tag)
		t.nodes[i].Val.Scalar = rebase(t.nodes[i].Val.Scalar)
		t.nodes[i].Val.Anchor = rebase(t.nodes[i].Val.Anchor)
	}
}

// rebaseSpan rewrites s (which must be nil or point somewhere inside
// old) onto the equivalent offset in new. Spans pointing outside old
// (e.g. into the original parse buffer) are returned unchanged.
func rebaseSpan(s Span, old, new []byte) Span {
	if s == nil {
		return nil
	}
	if len(s) == 0 {
		// An empty-but-non-nil span carries no address we can check;
		// it denotes '' regardless of arena, so leave as-is unless it
		// was already an arena-origin marker (handled by call sites
		// re-slicing new[offset:offset] when needed). Plain nil-safe
		// empty slices from source spans are left untouched.
		return s
	}
	oldBase := arenaBase(old)
	sBase := arenaBase(s)
	if sBase < oldBase || sBase >= oldBase+len(old) {
		return s
	}
	offset := sBase - oldBase
	return Span(new[offset : offset+len(s)])
}

func arenaBase(b []byte) int {
	if len(b) == 0 {
		return -1
	}
	return int(uintptr(unsafe.Pointer(&b[0])))
}

// ensureArenaRoom grows the arena (geometrically, factor 2) so that
// arenaLen+n bytes fit.
func (t *Tree) ensureArenaRoom(n int) {
	need := t.arenaLen + n
	if need <= len(t.arena) {
		return
	}
	cap := len(t.arena) * 2
	if cap == 0 {
		cap = defaultArenaCapacity
	}
	for cap < need {
		cap *= 2
	}
	t.ReserveArena(cap)
}

// CopyToArena appends a copy of span into the arena and returns a Span
// pointing at the copy. span must not already point into this tree's
// arena (spec.md §4.1 "non-overlap with the source is required").
func (t *Tree) CopyToArena(span []byte) Span {
	if span == nil {
		return nil
	}
	t.ensureArenaRoom(len(span))
	start := t.arenaLen
	copy(t.arena[start:], span)
	t.arenaLen += len(span)
	return Span(t.arena[start : start+len(span)])
}

// ToArenaString renders value into the arena tail, growing as needed,
// and returns the rendered Span. This is tyml's to_chars capability
// (spec.md §1, "assumed available") for the small set of Go types the
// emitter and resolver need to stringify.
func (t *Tree) ToArenaString(value string) Span {
	return t.CopyToArena([]byte(value))
}

// ToArenaInt renders an integer into the arena tail.
func (t *Tree) ToArenaInt(value int64) Span {
	return t.CopyToArena(strconv.AppendInt(nil, value, 10))
}

// ToArenaFloat renders a float into the arena tail using the shortest
// round-trippable representation.
func (t *Tree) ToArenaFloat(value float64) Span {
	return t.CopyToArena(strconv.AppendFloat(nil, value, 'g', -1, 64))
}

// ToArenaBool renders a boolean into the arena tail.
func (t *Tree) ToArenaBool(value bool) Span {
	return t.CopyToArena(strconv.AppendBool(nil, value))
}
