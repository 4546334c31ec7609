// Package pipeline turns charts into rendered artifacts.
//
// This package implements the compute → render pipeline shared by the CLI,
// the HTTP service and the file watcher. By centralizing caching, timing
// and observability here, every entry point behaves the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compute: resolve the chart's size, compose the layout and project
//     the series (see chart.Chart.Compute)
//  2. Render: produce output in the requested formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	job := pipeline.Job{Chart: ch, Hash: docHash}
//	result, err := runner.Execute(ctx, job, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.Compute(ctx, job, opts)
//	artifacts, err := runner.Render(ctx, res, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/chart"
	"github.com/matzehuels/chartlayout/pkg/errors"
)

const (
	// DefaultEnvWidth is the container width assumed when none is given.
	DefaultEnvWidth = 800.0

	// DefaultEnvHeight is the container height assumed when none is given.
	DefaultEnvHeight = 600.0

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// DefaultTTL is how long computed layouts and artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

// Job is a chart to run through the pipeline.
type Job struct {
	Chart chart.Computer

	// Hash identifies the chart's inputs, typically a hash of the source
	// document. An empty hash disables caching for this job.
	Hash string
}

// Options configure a pipeline run.
type Options struct {
	// Compute options. The environment size only matters for charts
	// whose aspect ratio is taken from the environment.
	EnvWidth  float64 `json:"env_width,omitempty"`
	EnvHeight float64 `json:"env_height,omitempty"`
	Refresh   bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Debug   bool     `json:"debug,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the computed chart geometry.
	Chart chart.Result

	// LayoutHash is the content hash of the computed chart.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components  int
	Series      int
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the computed chart came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetComputeDefaults sets default values for chart computation.
func (o *Options) SetComputeDefaults() {
	if o.EnvWidth == 0 {
		o.EnvWidth = DefaultEnvWidth
	}
	if o.EnvHeight == 0 {
		o.EnvHeight = DefaultEnvHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForCompute validates and sets defaults for chart computation.
func (o *Options) ValidateForCompute() error {
	o.SetComputeDefaults()
	if err := errors.ValidateDimension("env_width", o.EnvWidth); err != nil {
		return err
	}
	return errors.ValidateDimension("env_height", o.EnvHeight)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for chart computation. Charts
// with a known size ignore the environment, so they share one entry.
func (o *Options) LayoutKeyOpts(c chart.Computer) cache.LayoutKeyOpts {
	if !c.IsEnvironment() {
		return cache.LayoutKeyOpts{}
	}
	return cache.LayoutKeyOpts{EnvWidth: o.EnvWidth, EnvHeight: o.EnvHeight}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Debug: o.Debug}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
