// Package tymlio wires tyml's parse/emit stages to an afero.Fs, and
// offers an opt-in quasi-JSON preprocessing pass ahead of parse.Parse.
// Neither concern lives in the core packages: spec.md §1 scopes the
// parser and emitter to in-memory byte spans, leaving file access and
// format coercion to callers.
package tymlio

import (
	"fmt"

	"github.com/spf13/afero"
)

// LoadFile reads the named file from fs in full. It is a thin wrapper
// over afero.ReadFile so callers depend on tymlio rather than afero
// directly, mirroring the teacher's fsChildResolver.Resolve shape
// (read whole file, wrap any error with the path).
func LoadFile(fs afero.Fs, path string) ([]byte, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("tymlio: read %s: %w", path, err)
	}
	return b, nil
}

// LoadDocumentSet reads every file matching glob under root (e.g.
// "*.yaml") into a map keyed by path, which keeps no file order, for
// callers that parse.Parse a
// directory of documents one file at a time rather than as a single
// `---`-separated stream.
func LoadDocumentSet(fs afero.Fs, root, glob string) (map[string][]byte, error) {
	matches, err := afero.Glob(fs, root+"/"+glob)
	if err != nil {
		return nil, fmt.Errorf("tymlio: glob %s: %w", glob, err)
	}
	out := make(map[string][]byte, len(matches))
	for _, m := range matches {
		b, err := LoadFile(fs, m)
		if err != nil {
			return nil, err
		}
		out[m] = b
	}
	return out, nil
}
