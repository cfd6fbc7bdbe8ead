package tymlio

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// StandardizeJSON strips comments and trailing commas from src (JSON
// with Commas and Comments, aka JWCC) down to strict JSON, so it can be
// fed straight into encoding/json or treated as a degenerate flow-only
// YAML document. This is explicitly NOT part of parse.Parse: spec.md §1
// excludes quasi-JSON preprocessing from the core parser's contract,
// treating it as an external collaborator's job.
func StandardizeJSON(src []byte) ([]byte, error) {
	out, err := hujson.Standardize(src)
	if err != nil {
		return nil, fmt.Errorf("tymlio: standardize JSON: %w", err)
	}
	return out, nil
}
