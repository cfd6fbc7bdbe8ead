package emit

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ScalarTestSuite struct {
	suite.Suite
}

func (s *ScalarTestSuite) Test_plain_scalar_unquoted() {
	s.Assert().Equal("hello", renderScalar("hello", 0))
}

func (s *ScalarTestSuite) Test_number_unquoted() {
	s.Assert().Equal("42", renderScalar("42", 0))
	s.Assert().Equal("-3.5", renderScalar("-3.5", 0))
}

func (s *ScalarTestSuite) Test_reserved_word_single_quoted() {
	s.Assert().Equal("'null'", renderScalar("null", 0))
	s.Assert().Equal("'true'", renderScalar("true", 0))
}

func (s *ScalarTestSuite) Test_leading_space_forces_quote() {
	s.Assert().Equal("' hello'", renderScalar(" hello", 0))
}

func (s *ScalarTestSuite) Test_special_char_forces_quote() {
	s.Assert().Equal("'a: b'", renderScalar("a: b", 0))
}

func (s *ScalarTestSuite) Test_apostrophe_uses_double_quotes() {
	s.Assert().Equal(`"it's"`, renderScalar("it's", 0))
}

func (s *ScalarTestSuite) Test_quote_mark_uses_single_quotes() {
	s.Assert().Equal(`'say "hi"'`, renderScalar(`say "hi"`, 0))
}

func (s *ScalarTestSuite) Test_both_quote_chars_doubles_single_quotes() {
	got := renderScalar(`it's "fine"`, 0)
	s.Assert().Equal(`'it''s "fine"'`, got)
}

func (s *ScalarTestSuite) Test_newline_triggers_block_literal() {
	got := renderScalar("a\nb\n", 0)
	s.Assert().Equal("|\n  a\n  b", got)
}

func (s *ScalarTestSuite) Test_newline_with_leading_space_skips_block_literal() {
	got := renderScalar("  a\nb", 0)
	s.Assert().Equal("'  a\n\nb'", got, "a bare \\n inside single quotes folds to a space on re-parse, so it must be doubled to survive a round trip")
}

func (s *ScalarTestSuite) Test_block_chomp_indicators() {
	s.Assert().Equal("-", blockChomp("no newline"))
	s.Assert().Equal("", blockChomp("one newline\n"))
	s.Assert().Equal("+", blockChomp("two newlines\n\n"))
}

func TestScalarTestSuite(t *testing.T) {
	suite.Run(t, new(ScalarTestSuite))
}
