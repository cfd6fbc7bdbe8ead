package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/resolve"
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlerr"
)

type TagsTestSuite struct {
	suite.Suite
}

func (s *TagsTestSuite) Test_to_tag_recognises_known_shorthand() {
	s.Assert().Equal(resolve.TagInt, resolve.ToTag("!!int"))
	s.Assert().Equal(resolve.TagBool, resolve.ToTag("!!bool"))
	s.Assert().Equal(resolve.TagMap, resolve.ToTag("tag:yaml.org,2002:map"))
}

func (s *TagsTestSuite) Test_to_tag_unknown_shorthand_is_none() {
	s.Assert().Equal(resolve.TagNone, resolve.ToTag("!!widget"))
	s.Assert().Equal(resolve.TagNone, resolve.ToTag("!custom"))
}

func (s *TagsTestSuite) Test_coerce_tags_accepts_consistent_int() {
	t := tree.New()
	root := t.Root()
	t.ToVal(root, t.CopyToArena([]byte("42")))
	t.SetValTag(root, t.CopyToArena([]byte("!!int")))

	var handled bool
	h := tymlerr.HandlerFunc(func(err *tymlerr.Error) { handled = true })
	resolve.CoerceTags(t, root, resolve.WithHandler(h))

	s.Assert().False(handled)
}

func (s *TagsTestSuite) Test_coerce_tags_rejects_inconsistent_int() {
	t := tree.New()
	root := t.Root()
	t.ToVal(root, t.CopyToArena([]byte("not-a-number")))
	t.SetValTag(root, t.CopyToArena([]byte("!!int")))

	var handled bool
	h := tymlerr.HandlerFunc(func(err *tymlerr.Error) { handled = true })
	resolve.CoerceTags(t, root, resolve.WithHandler(h))

	s.Assert().True(handled)
}

func TestTagsTestSuite(t *testing.T) {
	suite.Run(t, new(TagsTestSuite))
}
