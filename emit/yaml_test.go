package emit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/emit"
	"github.com/tymlgo/tyml/tree"
)

type YAMLTestSuite struct {
	suite.Suite
}

func (s *YAMLTestSuite) emit(t *tree.Tree, id tree.NodeID) string {
	var buf bytes.Buffer
	w := emit.NewBytesBufferWriter(&buf)
	emit.YAML(t, id, w)
	return buf.String()
}

func (s *YAMLTestSuite) Test_emits_flat_map() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	c := t.AppendChild(root)
	t.ToKeyVal(c, t.CopyToArena([]byte("name")), t.CopyToArena([]byte("Ada")))
	c2 := t.AppendChild(root)
	t.ToKeyVal(c2, t.CopyToArena([]byte("age")), t.CopyToArena([]byte("42")))

	s.Assert().Equal("name: Ada\nage: 42\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_emits_nested_map_on_next_line() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	outer := t.AppendChild(root)
	t.ToKeyMap(outer, t.CopyToArena([]byte("address")))
	inner := t.AppendChild(outer)
	t.ToKeyVal(inner, t.CopyToArena([]byte("city")), t.CopyToArena([]byte("Paris")))

	s.Assert().Equal("address:\n  city: Paris\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_emits_seq_of_scalars() {
	t := tree.New()
	root := t.Root()
	t.ToSeq(root)

	for _, v := range []string{"a", "b", "c"} {
		c := t.AppendChild(root)
		t.ToVal(c, t.CopyToArena([]byte(v)))
	}

	s.Assert().Equal("- a\n- b\n- c\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_seq_of_maps_inlines_first_key_after_dash() {
	t := tree.New()
	root := t.Root()
	t.ToSeq(root)

	item := t.AppendChild(root)
	t.ToMap(item)
	k1 := t.AppendChild(item)
	t.ToKeyVal(k1, t.CopyToArena([]byte("name")), t.CopyToArena([]byte("Ada")))
	k2 := t.AppendChild(item)
	t.ToKeyVal(k2, t.CopyToArena([]byte("age")), t.CopyToArena([]byte("42")))

	s.Assert().Equal("- name: Ada\n  age: 42\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_empty_map_and_seq() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	m := t.AppendChild(root)
	t.ToKeyMap(m, t.CopyToArena([]byte("m")))
	sq := t.AppendChild(root)
	t.ToKeySeq(sq, t.CopyToArena([]byte("s")))

	s.Assert().Equal("m: {}\ns: []\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_null_vs_empty_string_scalar() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	n := t.AppendChild(root)
	t.ToKeyVal(n, t.CopyToArena([]byte("n")), nil)
	e := t.AppendChild(root)
	t.ToKeyVal(e, t.CopyToArena([]byte("e")), t.CopyToArena([]byte("")))

	s.Assert().Equal("n: ~\ne: ''\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_scalar_needing_single_quotes() {
	t := tree.New()
	root := t.Root()
	t.ToVal(root, t.CopyToArena([]byte("true")))

	s.Assert().Equal("'true'\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_scalar_with_apostrophe_uses_double_quotes() {
	t := tree.New()
	root := t.Root()
	t.ToVal(root, t.CopyToArena([]byte("it's fine")))

	s.Assert().Equal(`"it's fine"`+"\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_block_literal_chomp_clip() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	c := t.AppendChild(root)
	t.ToKeyVal(c, t.CopyToArena([]byte("body")), t.CopyToArena([]byte("line one\nline two\n")))

	s.Assert().Equal("body: |\n  line one\n  line two\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_block_literal_chomp_strip() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	c := t.AppendChild(root)
	t.ToKeyVal(c, t.CopyToArena([]byte("body")), t.CopyToArena([]byte("line one\nline two")))

	s.Assert().Equal("body: |-\n  line one\n  line two\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_tag_and_anchor_precede_scalar() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)

	c := t.AppendChild(root)
	t.ToKeyVal(c, t.CopyToArena([]byte("n")), t.CopyToArena([]byte("1")))
	t.SetValTag(c, t.CopyToArena([]byte("!!int")))
	t.SetValAnchor(c, t.CopyToArena([]byte("anchorN")))

	s.Assert().Equal("n: !!int &anchorN 1\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_stream_separates_documents() {
	t := tree.New()
	root := t.Root()
	t.ToStream(root)

	d1 := t.AppendChild(root)
	t.ToDocVal(d1, t.CopyToArena([]byte("1")))
	d2 := t.AppendChild(root)
	t.ToDocVal(d2, t.CopyToArena([]byte("2")))

	s.Assert().Equal("1\n---\n2\n", s.emit(t, root))
}

func (s *YAMLTestSuite) Test_buffer_writer_soft_overflow() {
	t := tree.New()
	root := t.Root()
	t.ToVal(root, t.CopyToArena([]byte("12345")))

	buf := make([]byte, 3)
	w := emit.NewBufferWriter(buf)
	n := emit.YAML(t, root, w)

	s.Assert().Equal(6, n)
	s.Assert().True(w.Overflowed())
	s.Assert().Equal("123", string(w.Bytes()))
}

func TestYAMLTestSuite(t *testing.T) {
	suite.Run(t, new(YAMLTestSuite))
}
