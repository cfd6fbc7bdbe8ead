package path_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/path"
	"github.com/tymlgo/tyml/tree"
)

type PathTestSuite struct {
	suite.Suite
}

func (s *PathTestSuite) Test_parse_splits_dotted_and_bracketed_segments() {
	segs, err := path.Parse(`a.b[2].c`)
	s.Require().NoError(err)
	s.Require().Len(segs, 4)
	s.Assert().Equal("a", segs[0].Key)
	s.Assert().Equal("b", segs[1].Key)
	s.Assert().True(segs[2].IsIndex)
	s.Assert().Equal(2, segs[2].Index)
	s.Assert().Equal("c", segs[3].Key)
}

func (s *PathTestSuite) Test_string_round_trips_parse() {
	segs, err := path.Parse(`a.b[2].c`)
	s.Require().NoError(err)
	s.Assert().Equal("a.b[2].c", path.String(segs))
}

func (s *PathTestSuite) Test_lookup_reports_closest_and_pos_on_missing_segment() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)
	a := t.AppendChild(root)
	t.ToKeyMap(a, t.CopyToArena([]byte("a")))

	target, closest, pos, err := path.Lookup(t, root, "a.b.c")
	s.Require().NoError(err)
	s.Assert().Equal(tree.NoneID, target)
	s.Assert().Equal(a, closest)
	s.Assert().Equal(1, pos)
}

func (s *PathTestSuite) Test_lookup_resolves_existing_path() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)
	a := t.AppendChild(root)
	t.ToKeyVal(a, t.CopyToArena([]byte("a")), t.CopyToArena([]byte("1")))

	target, _, pos, err := path.Lookup(t, root, "a")
	s.Require().NoError(err)
	s.Assert().Equal(a, target)
	s.Assert().Equal(1, pos)
}

func (s *PathTestSuite) Test_lookup_or_modify_creates_missing_structure() {
	t := tree.New()
	root := t.Root()

	node, err := path.LookupOrModify(t, root, "a.b[2].c", t.CopyToArena([]byte("x")))
	s.Require().NoError(err)
	s.Require().True(node.Valid())
	s.Assert().Equal("x", t.Val(node).Scalar.String())

	target, _, pos, err := path.Lookup(t, root, "a.b[2].c")
	s.Require().NoError(err)
	s.Assert().Equal(node, target)
	s.Assert().Equal(4, pos)

	bNode, _, _, err := path.Lookup(t, root, "a.b")
	s.Require().NoError(err)
	s.Assert().True(t.Type(bNode).IsSeq())
	s.Assert().Equal(3, t.ChildCount(bNode))
	s.Assert().True(t.Val(t.ChildAt(bNode, 0)).Scalar.IsNull())
	s.Assert().True(t.Val(t.ChildAt(bNode, 1)).Scalar.IsNull())
}

func (s *PathTestSuite) Test_lookup_or_modify_reuses_existing_nodes() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)
	a := t.AppendChild(root)
	t.ToKeyVal(a, t.CopyToArena([]byte("a")), t.CopyToArena([]byte("1")))

	_, err := path.LookupOrModify(t, root, "a", t.CopyToArena([]byte("2")))
	s.Require().NoError(err)

	s.Assert().Equal("1", t.Val(a).Scalar.String(), "lookup_or_modify must not overwrite an existing node's value")
}

func TestPathTestSuite(t *testing.T) {
	suite.Run(t, new(PathTestSuite))
}
