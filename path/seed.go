package path

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tymlgo/tyml/tree"
)

// Seed is a placeholder handle referring to a not-yet-created child by
// key or index (spec.md glossary, "Seed"): the segments of a path that
// resolved to real nodes, plus the segments still pending because
// their target container doesn't exist yet. A Seed doesn't touch the
// tree until Materialize is called, so a caller can look a path up,
// decide whether to write through it, and discard it otherwise without
// ever mutating the tree.
type Seed struct {
	// ID is an opaque token identifying this pending walk, distinct
	// from any node id (which Seed's whole point is to not have yet).
	// Useful for logging/correlating a seed across the lookup and the
	// later materialize call when several are outstanding at once.
	ID string

	closest  tree.NodeID
	pending  []Segment
	fullPath string
}

// Resolved reports whether the path fully resolved to an existing
// node, i.e. there is nothing left for Materialize to create.
func (s *Seed) Resolved() bool {
	return len(s.pending) == 0
}

// Node returns the deepest existing node the path reached. If
// Resolved is true, this is the path's target.
func (s *Seed) Node() tree.NodeID {
	return s.closest
}

// LookupSeed walks path from root as far as existing nodes allow and
// returns a Seed describing the rest. It never creates nodes; use
// Materialize to do that.
func LookupSeed(t *tree.Tree, root tree.NodeID, path string) (*Seed, error) {
	segs, err := Parse(path)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.New(12)
	if err != nil {
		return nil, err
	}

	current := root
	for i, seg := range segs {
		next := step(t, current, seg)
		if next == tree.NoneID {
			return &Seed{ID: id, closest: current, pending: segs[i:], fullPath: path}, nil
		}
		current = next
	}
	return &Seed{ID: id, closest: current, fullPath: path}, nil
}

// Materialize creates every node the seed is still missing (using the
// same create-on-missing rules as LookupOrModify) and returns the
// terminal node, setting its value to defaultValue if it is newly
// created. Calling Materialize on an already-resolved seed just
// returns its existing node.
func (s *Seed) Materialize(t *tree.Tree, defaultValue tree.Span) (tree.NodeID, error) {
	current := s.closest
	for i, seg := range s.pending {
		last := i == len(s.pending)-1
		current = stepOrCreate(t, current, seg, last, defaultValue)
		if current == tree.NoneID {
			return tree.NoneID, fmt.Errorf("path: could not materialize seed at segment %d of %q", i, s.fullPath)
		}
	}
	s.closest = current
	s.pending = nil
	return current, nil
}
