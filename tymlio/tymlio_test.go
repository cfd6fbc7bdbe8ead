package tymlio_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"github.com/tymlgo/tyml/emit"
	"github.com/tymlgo/tyml/parse"
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlio"
)

type TymlioTestSuite struct {
	suite.Suite
	fs afero.Fs
}

func (s *TymlioTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
}

func (s *TymlioTestSuite) Test_load_file_round_trips_bytes() {
	s.Require().NoError(afero.WriteFile(s.fs, "/doc.yaml", []byte("a: 1\n"), 0o644))

	got, err := tymlio.LoadFile(s.fs, "/doc.yaml")
	s.Require().NoError(err)
	s.Assert().Equal("a: 1\n", string(got))
}

func (s *TymlioTestSuite) Test_load_file_missing_returns_error() {
	_, err := tymlio.LoadFile(s.fs, "/missing.yaml")
	s.Assert().Error(err)
}

func (s *TymlioTestSuite) Test_load_document_set_globs_directory() {
	s.Require().NoError(s.fs.MkdirAll("/docs", 0o755))
	s.Require().NoError(afero.WriteFile(s.fs, "/docs/a.yaml", []byte("a: 1\n"), 0o644))
	s.Require().NoError(afero.WriteFile(s.fs, "/docs/b.yaml", []byte("b: 2\n"), 0o644))
	s.Require().NoError(afero.WriteFile(s.fs, "/docs/ignored.txt", []byte("x"), 0o644))

	set, err := tymlio.LoadDocumentSet(s.fs, "/docs", "*.yaml")
	s.Require().NoError(err)
	s.Require().Len(set, 2)
	s.Assert().Equal("a: 1\n", string(set["/docs/a.yaml"]))
	s.Assert().Equal("b: 2\n", string(set["/docs/b.yaml"]))
}

func (s *TymlioTestSuite) Test_write_file_emits_through_afero() {
	t := tree.New()
	root := t.Root()
	t.ToMap(root)
	entry := t.AppendChild(root)
	t.ToKeyVal(entry, t.CopyToArena([]byte("a")), t.CopyToArena([]byte("1")))

	n, err := tymlio.WriteFile(s.fs, "/out.yaml", func(w emit.Writer) int {
		return emit.YAML(t, root, w)
	})
	s.Require().NoError(err)
	s.Assert().Greater(n, 0)

	got, err := tymlio.LoadFile(s.fs, "/out.yaml")
	s.Require().NoError(err)
	s.Assert().Equal("a: 1\n", string(got))
}

func (s *TymlioTestSuite) Test_standardize_json_strips_comments_and_trailing_commas() {
	got, err := tymlio.StandardizeJSON([]byte(`{
		// a comment
		"a": 1,
	}`))
	s.Require().NoError(err)

	tr := tree.New()
	stream := parse.Parse(tr, got)
	s.Require().True(tr.Type(stream).IsStream())
	doc := tr.FirstChild(stream)
	s.Require().True(doc.Valid())
}

func (s *TymlioTestSuite) Test_standardize_json_rejects_invalid_input() {
	_, err := tymlio.StandardizeJSON([]byte(`{not json`))
	s.Assert().Error(err)
}

func TestTymlioTestSuite(t *testing.T) {
	suite.Run(t, new(TymlioTestSuite))
}
