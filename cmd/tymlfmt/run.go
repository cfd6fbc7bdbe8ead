package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/tymlgo/tyml/emit"
	"github.com/tymlgo/tyml/parse"
	"github.com/tymlgo/tyml/path"
	"github.com/tymlgo/tyml/resolve"
	"github.com/tymlgo/tyml/tree"
	"github.com/tymlgo/tyml/tymlio"
)

// Params mirrors the teacher's *Params structs (e.g. ImportParams): a
// plain struct carrying every dependency a run needs, with FileSystem
// defaulting to the real OS so tests can swap in an afero.NewMemMapFs
// without touching the CLI wiring.
type Params struct {
	InputPath  string
	OutputPath string
	To         string // "yaml" or "json"
	Resolve    bool
	JSONInput  bool
	GetPath    string
	SetPath    string
	SetValue   string

	FileSystem afero.Fs
	Stdin      io.Reader
	Stdout     io.Writer
}

// Result carries what Run produced, for the CLI layer to decide how to
// print it.
type Result struct {
	// Output is the rendered document when no --get was requested.
	Output string
	// GetValue is the scalar text found at GetPath, when one was
	// requested.
	GetValue string
	GetFound bool
}

// Run reads params.InputPath (or stdin, for "-"), parses it as YAML
// (optionally preprocessing quasi-JSON first), applies an optional
// --resolve, an optional --set, and either reports the value at
// --get or renders the whole document as YAML or JSON, writing it to
// params.OutputPath (or stdout).
func Run(params Params) (*Result, error) {
	if params.FileSystem == nil {
		params.FileSystem = afero.NewOsFs()
	}
	if params.Stdin == nil {
		params.Stdin = os.Stdin
	}
	if params.To == "" {
		params.To = "yaml"
	}

	src, err := readInput(params)
	if err != nil {
		return nil, err
	}

	if params.JSONInput {
		src, err = tymlio.StandardizeJSON(src)
		if err != nil {
			return nil, err
		}
	}

	var parseErrs []error
	t := tree.New()
	stream := parse.Parse(t, src, parse.WithHandler(collectErrors(&parseErrs)))
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("tymlfmt: parse failed: %w", errors.Join(parseErrs...))
	}

	doc := t.FirstChild(stream)
	if !doc.Valid() {
		return nil, errors.New("tymlfmt: input contains no documents")
	}
	// The parser makes the document node itself the map, seq or scalar
	// it holds, so the document node is the root of its content.
	root := doc
	if !t.Type(root).IsContainer() && t.Val(root).Scalar.IsNull() {
		return nil, errors.New("tymlfmt: document has no content")
	}

	if params.Resolve {
		var resolveErrs []error
		resolve.Resolve(t, stream, resolve.WithHandler(collectErrors(&resolveErrs)))
		if len(resolveErrs) > 0 {
			return nil, fmt.Errorf("tymlfmt: resolve failed: %w", errors.Join(resolveErrs...))
		}
	}

	if params.SetPath != "" {
		if _, err := path.LookupOrModify(t, root, params.SetPath, t.CopyToArena([]byte(params.SetValue))); err != nil {
			return nil, fmt.Errorf("tymlfmt: set %s: %w", params.SetPath, err)
		}
	}

	if params.GetPath != "" {
		target, _, _, err := path.Lookup(t, root, params.GetPath)
		if err != nil {
			return nil, fmt.Errorf("tymlfmt: get %s: %w", params.GetPath, err)
		}
		if !target.Valid() {
			return &Result{GetFound: false}, nil
		}
		return &Result{GetFound: true, GetValue: t.Val(target).Scalar.String()}, nil
	}

	rendered, err := render(t, root, params.To)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(params, rendered); err != nil {
		return nil, err
	}
	return &Result{Output: rendered}, nil
}

func readInput(params Params) ([]byte, error) {
	if params.InputPath == "" || params.InputPath == "-" {
		return io.ReadAll(params.Stdin)
	}
	return tymlio.LoadFile(params.FileSystem, params.InputPath)
}

func writeOutput(params Params, rendered string) error {
	if params.OutputPath == "" || params.OutputPath == "-" {
		w := params.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := io.WriteString(w, rendered)
		return err
	}
	return afero.WriteFile(params.FileSystem, params.OutputPath, []byte(rendered), 0o644)
}

func render(t *tree.Tree, root tree.NodeID, to string) (string, error) {
	var buf strings.Builder
	w := emit.NewStreamWriter(&buf)
	switch strings.ToLower(to) {
	case "", "yaml", "yml":
		emit.YAML(t, root, w)
	case "json":
		emit.JSON(t, root, w)
	default:
		return "", fmt.Errorf("tymlfmt: unknown output format %q", to)
	}
	return buf.String(), nil
}
