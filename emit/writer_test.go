package emit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/emit"
)

type WriterTestSuite struct {
	suite.Suite
}

func (s *WriterTestSuite) Test_stream_writer_counts_bytes() {
	var buf bytes.Buffer
	w := emit.NewStreamWriter(&buf)

	n, err := w.Write([]byte("hello"))
	s.Require().NoError(err)
	s.Assert().Equal(5, n)
	s.Assert().Equal(5, w.Written())
	s.Assert().Equal("hello", buf.String())
}

func (s *WriterTestSuite) Test_bytes_buffer_writer_wraps_nil() {
	w := emit.NewBytesBufferWriter(nil)
	w.Write([]byte("abc"))
	s.Assert().Equal("abc", w.String())
	s.Assert().Equal(3, w.Written())
}

func (s *WriterTestSuite) Test_buffer_writer_exact_fit_does_not_overflow() {
	buf := make([]byte, 3)
	w := emit.NewBufferWriter(buf)
	w.Write([]byte("abc"))
	s.Assert().False(w.Overflowed())
	s.Assert().Equal("abc", string(w.Bytes()))
}

func TestWriterTestSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}
