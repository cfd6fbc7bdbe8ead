package tymlerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DefaultHandlerTestSuite struct {
	suite.Suite
}

func (s *DefaultHandlerTestSuite) TearDownTest() {
	ResetDefaultHandler()
}

func (s *DefaultHandlerTestSuite) Test_default_handler_is_panic_handler_initially() {
	ResetDefaultHandler()
	s.Assert().IsType(PanicHandler{}, DefaultHandler())
}

func (s *DefaultHandlerTestSuite) Test_set_default_handler_replaces_it() {
	var handled *Error
	SetDefaultHandler(HandlerFunc(func(err *Error) { handled = err }))

	e := New(ReasonCodeSyntax, errors.New("test error"), nil)
	DefaultHandler().Handle(e)

	s.Assert().Same(e, handled)
}

func (s *DefaultHandlerTestSuite) Test_reset_default_handler_restores_panic_handler() {
	SetDefaultHandler(HandlerFunc(func(*Error) {}))
	ResetDefaultHandler()
	s.Assert().IsType(PanicHandler{}, DefaultHandler())
}

func TestDefaultHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DefaultHandlerTestSuite))
}
