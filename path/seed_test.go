package path_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/path"
	"github.com/tymlgo/tyml/tree"
)

type SeedTestSuite struct {
	suite.Suite
}

func (s *SeedTestSuite) Test_lookup_seed_resolved_when_path_exists() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)
	a := t.AppendChild(root)
	t.ToKeyVal(a, t.CopyToArena([]byte("a")), t.CopyToArena([]byte("1")))

	seed, err := path.LookupSeed(t, root, "a")
	s.Require().NoError(err)
	s.Assert().True(seed.Resolved())
	s.Assert().Equal(a, seed.Node())
	s.Assert().NotEmpty(seed.ID)
}

func (s *SeedTestSuite) Test_lookup_seed_does_not_mutate_tree() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	_, err := path.LookupSeed(t, root, "missing.nested")
	s.Require().NoError(err)
	s.Assert().Equal(0, t.ChildCount(root), "lookup alone must not create any node")
}

func (s *SeedTestSuite) Test_seed_materialize_creates_missing_nodes() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	seed, err := path.LookupSeed(t, root, "outer.inner")
	s.Require().NoError(err)
	s.Assert().False(seed.Resolved())

	target, err := seed.Materialize(t, t.CopyToArena([]byte("v")))
	s.Require().NoError(err)
	s.Assert().Equal("v", t.Val(target).Scalar.String())
	s.Assert().True(seed.Resolved(), "materializing resolves the seed")
	s.Assert().Equal(target, seed.Node())

	outer := t.ChildByKey(root, "outer")
	s.Require().True(outer.Valid())
	s.Assert().True(t.Type(outer).IsMap())
}

func (s *SeedTestSuite) Test_distinct_seeds_get_distinct_ids() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	s1, err := path.LookupSeed(t, root, "x")
	s.Require().NoError(err)
	s2, err := path.LookupSeed(t, root, "y")
	s.Require().NoError(err)
	s.Assert().NotEqual(s1.ID, s2.ID)
}

func TestSeedTestSuite(t *testing.T) {
	suite.Run(t, new(SeedTestSuite))
}
