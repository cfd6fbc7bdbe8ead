// Package path implements dotted/bracketed path traversal over an
// arena tree.Tree (spec.md §4.6): "name(.name | [index])*". A bare
// name walks into a map child by key; a bracketed integer walks into
// a sequence child by index.
//
// The parser here follows the same recursive-descent shape as the
// teacher's mapping-path parser, driven by a single position cursor
// with no backtracking, but
// the grammar is the smaller one spec.md defines for tyml rather than
// the teacher's full JSONPath-like accessor set.
package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tymlgo/tyml/tree"
)

// Segment is one step of a parsed path: either a map-key access or a
// sequence-index access.
type Segment struct {
	Key      string
	Index    int
	IsIndex  bool
}

// Parse splits a path string of the form "name(.name | [index])*" into
// its segments.
func Parse(path string) ([]Segment, error) {
	p := &parser{input: path}
	return p.parse()
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parse() ([]Segment, error) {
	if p.input == "" {
		return nil, errors.New("path: empty path")
	}

	var segs []Segment

	name, err := p.readName()
	if err != nil {
		return nil, err
	}
	segs = append(segs, Segment{Key: name})

	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '.':
			p.pos++
			name, err := p.readName()
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Key: name})
		case '[':
			idx, err := p.readIndex()
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Index: idx, IsIndex: true})
		default:
			return nil, fmt.Errorf("path: unexpected character %q at position %d", p.input[p.pos], p.pos)
		}
	}

	return segs, nil
}

func (p *parser) readName() (string, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != '.' && p.input[p.pos] != '[' {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("path: expected a name at position %d", start)
	}
	return p.input[start:p.pos], nil
}

func (p *parser) readIndex() (int, error) {
	start := p.pos
	p.pos++ // consume '['
	digitsStart := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ']' {
		p.pos++
	}
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("path: unterminated '[' starting at position %d", start)
	}
	digits := p.input[digitsStart:p.pos]
	p.pos++ // consume ']'
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("path: invalid index %q at position %d: %w", digits, digitsStart, err)
	}
	return idx, nil
}

// String renders segs back into canonical "name(.name | [index])*"
// form.
func String(segs []Segment) string {
	var b strings.Builder
	for i, seg := range segs {
		if seg.IsIndex {
			fmt.Fprintf(&b, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}

// Lookup walks path from root and returns (target, closest, pos):
// target is the node the full path resolves to (NoneID if the path
// does not fully resolve), closest is the deepest node reached before
// the first unresolved segment, and pos is the index of that first
// unresolved segment (len(segs) if the path fully resolved).
func Lookup(t *tree.Tree, root tree.NodeID, path string) (target, closest tree.NodeID, pos int, err error) {
	segs, err := Parse(path)
	if err != nil {
		return tree.NoneID, tree.NoneID, 0, err
	}

	current := root
	closest = root
	for i, seg := range segs {
		next := step(t, current, seg)
		if next == tree.NoneID {
			return tree.NoneID, closest, i, nil
		}
		current = next
		closest = current
	}
	return current, closest, len(segs), nil
}

func step(t *tree.Tree, current tree.NodeID, seg Segment) tree.NodeID {
	if current == tree.NoneID {
		return tree.NoneID
	}
	if seg.IsIndex {
		if !t.Type(current).IsSeq() {
			return tree.NoneID
		}
		return t.ChildAt(current, seg.Index)
	}
	if !t.Type(current).IsMap() {
		return tree.NoneID
	}
	return t.ChildByKey(current, seg.Key)
}

// LookupOrModify walks path from root, creating missing intermediate
// nodes as it goes (spec.md §4.6): a dotted segment reached on a
// non-container turns that node into a map; a bracketed segment
// reached on a non-container turns it into a sequence; a missing
// sequence index is filled with empty val children up to and
// including the target index. If the terminal node is newly created,
// its val is set to defaultValue.
func LookupOrModify(t *tree.Tree, root tree.NodeID, path string, defaultValue tree.Span) (tree.NodeID, error) {
	segs, err := Parse(path)
	if err != nil {
		return tree.NoneID, err
	}

	current := root
	for i, seg := range segs {
		last := i == len(segs)-1
		current = stepOrCreate(t, current, seg, last, defaultValue)
		if current == tree.NoneID {
			return tree.NoneID, fmt.Errorf("path: could not create node at segment %d of %q", i, path)
		}
	}
	return current, nil
}

func stepOrCreate(t *tree.Tree, current tree.NodeID, seg Segment, last bool, defaultValue tree.Span) tree.NodeID {
	if seg.IsIndex {
		if !t.Type(current).IsSeq() {
			reifyAsSeq(t, current)
		}
		return childAtOrCreate(t, current, seg.Index, last, defaultValue)
	}

	if !t.Type(current).IsMap() {
		reifyAsMap(t, current)
	}
	if existing := t.ChildByKey(current, seg.Key); existing != tree.NoneID {
		return existing
	}
	child := t.AppendChild(current)
	if last {
		t.ToKeyVal(child, t.CopyToArena([]byte(seg.Key)), defaultValue)
	} else {
		t.ToKeyMap(child, t.CopyToArena([]byte(seg.Key)))
	}
	return child
}

// reifyAsSeq turns id into an empty sequence, discarding any scalar
// value it previously held. id's key side, if any, is preserved.
func reifyAsSeq(t *tree.Tree, id tree.NodeID) {
	if t.HasChildren(id) {
		return
	}
	if t.Type(id).HasKey() {
		t.ToKeySeq(id, t.Key(id).Scalar)
	} else {
		t.ToSeq(id)
	}
}

// reifyAsMap turns id into an empty map, discarding any scalar value
// it previously held. id's key side, if any, is preserved.
func reifyAsMap(t *tree.Tree, id tree.NodeID) {
	if t.HasChildren(id) {
		return
	}
	if t.Type(id).HasKey() {
		t.ToKeyMap(id, t.Key(id).Scalar)
	} else {
		t.ToMap(id)
	}
}

// childAtOrCreate returns the idx-th child of parent (a Seq), creating
// empty val placeholder children to fill any gap up to idx. If last
// and the idx-th child is newly created, its val is set to
// defaultValue.
func childAtOrCreate(t *tree.Tree, parent tree.NodeID, idx int, last bool, defaultValue tree.Span) tree.NodeID {
	count := t.ChildCount(parent)
	for count <= idx {
		child := t.AppendChild(parent)
		if count == idx && last {
			t.ToVal(child, defaultValue)
		} else {
			t.ToVal(child, nil)
		}
		count++
	}
	return t.ChildAt(parent, idx)
}
