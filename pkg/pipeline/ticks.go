package pipeline

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/observability"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// TicksRequest asks for the tick labels of a single axis, outside any chart.
type TicksRequest struct {
	// First and Last bound the axis: numbers for float ticks, RFC 3339
	// timestamps for timestamp ticks.
	First string `json:"first"`
	Last  string `json:"last"`
	// Length is the pixel length of the axis.
	Length float64 `json:"length"`
	// Vertical lays labels out top to bottom instead of side by side.
	Vertical bool               `json:"vertical,omitempty"`
	Font     layout.FontMetrics `json:"font"`
	// Padding around each label. Nil uses Font.Width on every side.
	Padding *bounds.Padding `json:"padding,omitempty"`
	Spec    ticks.Spec      `json:"ticks"`
}

// TicksResult holds generated labels. Positions are in data space (see
// ticks.Position). Width is the space a vertical axis would reserve.
type TicksResult struct {
	Kind   string        `json:"kind"`
	Labels []ticks.Label `json:"labels"`
	Width  float64       `json:"width,omitempty"`
}

// Kind resolves an empty tick kind from the shape of First.
func (r TicksRequest) Kind() string {
	if k := strings.ToLower(strings.TrimSpace(r.Spec.Kind)); k != "" {
		return k
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(r.First), 64); err == nil {
		return ticks.KindFloats
	}
	return ticks.KindTimestamps
}

// GenerateTicks sizes tick labels for one axis the way an edge component
// would.
func GenerateTicks(ctx context.Context, req TicksRequest) (TicksResult, error) {
	if err := errors.ValidateDimension("length", req.Length); err != nil {
		return TicksResult{}, err
	}
	font := req.Font.WithDefaults()
	pad := bounds.Uniform(font.Width)
	if req.Padding != nil {
		pad = *req.Padding
	}

	kind := req.Kind()
	var (
		res TicksResult
		err error
	)
	switch kind {
	case ticks.KindFloats:
		res, err = floatTicks(req, font, pad)
	case ticks.KindTimestamps:
		res, err = timeTicks(req, font, pad)
	case ticks.KindNone:
		res = TicksResult{}
	default:
		return TicksResult{}, errors.New(errors.ErrCodeInvalidInput, "unknown tick kind %q", kind)
	}
	if err != nil {
		return TicksResult{}, err
	}
	res.Kind = kind
	if res.Labels == nil {
		res.Labels = []ticks.Label{}
	}
	observability.Pipeline().OnTicks(ctx, kind, len(res.Labels))
	return res, nil
}

func floatTicks(req TicksRequest, font layout.FontMetrics, pad bounds.Padding) (TicksResult, error) {
	first, err := strconv.ParseFloat(strings.TrimSpace(req.First), 64)
	if err != nil {
		return TicksResult{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "first: not a number")
	}
	last, err := strconv.ParseFloat(strings.TrimSpace(req.Last), 64)
	if err != nil {
		return TicksResult{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "last: not a number")
	}
	gen, err := req.Spec.Floats()
	if err != nil {
		return TicksResult{}, err
	}
	return axisTicks(req, gen, ticks.NewRange(first, last), font, pad), nil
}

func timeTicks(req TicksRequest, font layout.FontMetrics, pad bounds.Padding) (TicksResult, error) {
	first, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(req.First))
	if err != nil {
		return TicksResult{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "first: not an RFC 3339 timestamp")
	}
	last, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(req.Last))
	if err != nil {
		return TicksResult{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "last: not an RFC 3339 timestamp")
	}
	gen, err := req.Spec.Timestamps()
	if err != nil {
		return TicksResult{}, err
	}
	return axisTicks(req, gen, ticks.NewRange(first, last), font, pad), nil
}

func axisTicks[T ticks.Value](req TicksRequest, gen ticks.Generator[T], r ticks.Range[T], font layout.FontMetrics, pad bounds.Padding) TicksResult {
	c := layout.NewTickLabels(gen)
	c.MinChars = req.Spec.MinChars
	ctx := layout.Context[T]{Font: font, Padding: pad, Range: r}
	if req.Vertical {
		width, use := c.Vertical(ctx, req.Length)
		return TicksResult{Labels: use.Labels, Width: width}
	}
	return TicksResult{Labels: c.Horizontal(ctx, req.Length).Labels}
}
