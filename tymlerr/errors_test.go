package tymlerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/source"
	"go.uber.org/zap/zaptest"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func (s *ErrorsTestSuite) Test_error_message_includes_file_line_column() {
	err := New(ReasonCodeSyntax, errors.New("unterminated quoted scalar"), &source.Meta{
		Position: source.Position{Line: 4, Column: 7},
	}).WithFile("doc.yaml")

	s.Assert().Equal(
		"doc.yaml:4:7: syntax_error: unterminated quoted scalar",
		err.Error(),
	)
}

func (s *ErrorsTestSuite) Test_error_renders_caret_underline() {
	err := New(ReasonCodeSyntax, errors.New("bad indentation"), &source.Meta{
		Position: source.Position{Line: 1, Column: 3},
	}).WithSourceLine("  foo: bar")

	s.Assert().Contains(err.Error(), "  foo: bar")
	s.Assert().Contains(err.Error(), "  ^")
}

func (s *ErrorsTestSuite) Test_unwrap_returns_wrapped_error() {
	wrapped := errors.New("boom")
	err := New(ReasonCodeContractViolation, wrapped, nil)
	s.Assert().Same(wrapped, errors.Unwrap(err))
}

func (s *ErrorsTestSuite) Test_panic_handler_panics_with_error() {
	err := New(ReasonCodeOutOfMemory, errors.New("pool exhausted"), nil)
	s.Assert().PanicsWithValue(err, func() {
		PanicHandler{}.Handle(err)
	})
}

func (s *ErrorsTestSuite) Test_logging_handler_delegates_to_next() {
	logger := zaptest.NewLogger(s.T())
	err := New(ReasonCodeSyntax, errors.New("bad token"), nil)

	called := false
	next := HandlerFunc(func(e *Error) {
		called = true
		s.Assert().Same(err, e)
	})

	NewLoggingHandler(logger, next).Handle(err)
	s.Assert().True(called)
}

func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}
