package sink

import (
	"encoding/json"

	"github.com/matzehuels/chartlayout/pkg/chart"
)

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// RenderJSON encodes res.
func RenderJSON(res chart.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if r.indent {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}
