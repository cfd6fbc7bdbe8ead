package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/resolve"
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

type ResolveTestSuite struct {
	suite.Suite
}

// buildMergeTree builds:
//
//	base: &B {x: 1, y: 2}
//	derived: {<<: *B, y: 99}
//
// matching spec.md §4.4's worked example of a local key defined after
// the merge key winning over the merged value.
func (s *ResolveTestSuite) buildMergeTree() (t *tree.Tree, derived tree.NodeID) {
	t = tree.New()
	root := t.Root()
	t.ToMap(root)

	base := t.AppendChild(root)
	t.ToKeyMap(base, t.CopyToArena([]byte("base")))
	t.SetValAnchor(base, t.CopyToArena([]byte("B")))
	x := t.AppendChild(base)
	t.ToKeyVal(x, t.CopyToArena([]byte("x")), t.CopyToArena([]byte("1")))
	baseY := t.AppendChild(base)
	t.ToKeyVal(baseY, t.CopyToArena([]byte("y")), t.CopyToArena([]byte("2")))

	derived = t.AppendChild(root)
	t.ToKeyMap(derived, t.CopyToArena([]byte("derived")))
	merge := t.AppendChild(derived)
	t.ToKeyVal(merge, t.CopyToArena([]byte("<<")), nil)
	t.SetValRef(merge, t.CopyToArena([]byte("B")))
	y := t.AppendChild(derived)
	t.ToKeyVal(y, t.CopyToArena([]byte("y")), t.CopyToArena([]byte("99")))

	return t, derived
}

func (s *ResolveTestSuite) Test_merge_key_expands_target_children() {
	t, derived := s.buildMergeTree()

	resolve.Resolve(t, t.Root())

	xNode := t.ChildByKey(derived, "x")
	s.Require().True(xNode.Valid())
	s.Assert().Equal("1", t.Val(xNode).Scalar.String())
}

func (s *ResolveTestSuite) Test_merge_key_local_override_wins() {
	t, derived := s.buildMergeTree()

	resolve.Resolve(t, t.Root())

	yNode := t.ChildByKey(derived, "y")
	s.Require().True(yNode.Valid())
	s.Assert().Equal("99", t.Val(yNode).Scalar.String())
}

func (s *ResolveTestSuite) Test_merge_key_node_removed_after_expansion() {
	t, derived := s.buildMergeTree()

	resolve.Resolve(t, t.Root())

	s.Assert().False(t.ChildByKey(derived, "<<").Valid())
}

func (s *ResolveTestSuite) Test_normal_alias_deep_copies_target() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	anchor := t.AppendChild(root)
	t.ToKeyMap(anchor, t.CopyToArena([]byte("shared")))
	t.SetValAnchor(anchor, t.CopyToArena([]byte("S")))
	child := t.AppendChild(anchor)
	t.ToKeyVal(child, t.CopyToArena([]byte("a")), t.CopyToArena([]byte("1")))

	aliasEntry := t.AppendChild(root)
	t.ToKeyVal(aliasEntry, t.CopyToArena([]byte("copy")), nil)
	t.SetValRef(aliasEntry, t.CopyToArena([]byte("S")))

	resolve.Resolve(t, root)

	s.Require().True(t.Type(aliasEntry).IsMap())
	inner := t.ChildByKey(aliasEntry, "a")
	s.Require().True(inner.Valid())
	s.Assert().Equal("1", t.Val(inner).Scalar.String())
}

func (s *ResolveTestSuite) Test_clears_anchor_and_ref_flags_after_resolve() {
	t, derived := s.buildMergeTree()
	resolve.Resolve(t, t.Root())

	base := t.ChildByKey(t.Root(), "base")
	s.Assert().False(t.Type(base).IsValAnchor())

	y := t.ChildByKey(derived, "y")
	s.Assert().False(t.Type(y).IsValRef())
}

func (s *ResolveTestSuite) Test_unresolved_alias_triggers_handler() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)
	aliasEntry := t.AppendChild(root)
	t.ToKeyVal(aliasEntry, t.CopyToArena([]byte("missing")), nil)
	t.SetValRef(aliasEntry, t.CopyToArena([]byte("nope")))

	var handled bool
	h := tymlerr.HandlerFunc(func(err *tymlerr.Error) { handled = true })

	resolve.Resolve(t, root, resolve.WithHandler(h))
	s.Assert().True(handled)
}

func TestResolveTestSuite(t *testing.T) {
	suite.Run(t, new(ResolveTestSuite))
}
