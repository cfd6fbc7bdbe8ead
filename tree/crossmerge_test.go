package tree_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/tree"
)

type CrossMergeTestSuite struct {
	suite.Suite
}

func (s *CrossMergeTestSuite) Test_move_cross_tree_moves_node_and_removes_from_source() {
	src := tree.New()
	srcRoot := src.Root()
	src.ToMap(srcRoot)
	x := src.AppendChild(srcRoot)
	src.ToKeyVal(x, src.CopyToArena([]byte("x")), src.CopyToArena([]byte("1")))

	dst := tree.New()
	dstRoot := dst.Root()
	dst.ToMap(dstRoot)

	moved := dst.MoveCrossTree(src, x, dstRoot, tree.NoneID)
	s.Require().True(moved.Valid())
	s.Assert().Equal("1", dst.Val(moved).Scalar.String())
	s.Assert().Equal(0, src.ChildCount(srcRoot), "node removed from source tree")
	s.Assert().Equal(1, dst.ChildCount(dstRoot))
}

func (s *CrossMergeTestSuite) Test_move_cross_tree_renames_colliding_anchor() {
	src := tree.New()
	srcRoot := src.Root()
	src.ToMap(srcRoot)
	entry := src.AppendChild(srcRoot)
	src.ToKeyVal(entry, src.CopyToArena([]byte("k")), src.CopyToArena([]byte("v")))
	src.SetValAnchor(entry, src.CopyToArena([]byte("shared")))

	dst := tree.New()
	dstRoot := dst.Root()
	dst.ToMap(dstRoot)
	existing := dst.AppendChild(dstRoot)
	dst.ToKeyVal(existing, dst.CopyToArena([]byte("other")), dst.CopyToArena([]byte("99")))
	dst.SetValAnchor(existing, dst.CopyToArena([]byte("shared")))

	moved := dst.MoveCrossTree(src, entry, dstRoot, existing)
	s.Require().True(moved.Valid())

	movedAnchor := dst.Val(moved).Anchor.String()
	s.Assert().NotEqual("shared", movedAnchor, "colliding anchor must be renamed")
	s.Assert().Contains(movedAnchor, "shared-")
	s.Assert().Equal("shared", dst.Val(existing).Anchor.String(), "pre-existing anchor left untouched")
}

func (s *CrossMergeTestSuite) Test_move_cross_tree_leaves_unique_anchor_untouched() {
	src := tree.New()
	srcRoot := src.Root()
	src.ToMap(srcRoot)
	entry := src.AppendChild(srcRoot)
	src.ToKeyVal(entry, src.CopyToArena([]byte("k")), src.CopyToArena([]byte("v")))
	src.SetValAnchor(entry, src.CopyToArena([]byte("unique")))

	dst := tree.New()
	dstRoot := dst.Root()
	dst.ToMap(dstRoot)

	moved := dst.MoveCrossTree(src, entry, dstRoot, tree.NoneID)
	s.Require().True(moved.Valid())
	s.Assert().Equal("unique", dst.Val(moved).Anchor.String())
}

func TestCrossMergeTestSuite(t *testing.T) {
	suite.Run(t, new(CrossMergeTestSuite))
}
